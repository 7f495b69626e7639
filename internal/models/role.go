package models

import "fmt"

// Role is the authorization level of a user. Only the constants below are valid.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
	RoleUser  Role = "user"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleOwner, RoleUser}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleUser:
		return true
	}
	return false
}

// ParseRole converts s into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
