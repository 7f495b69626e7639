// Package authz holds the single table deciding which roles may perform
// which protected operation.
package authz

import "storerate/internal/models"

// Operation names a protected operation.
type Operation string

const (
	ChangePassword Operation = "change_password"
	RateStore      Operation = "rate_store"
	ViewOwnRating  Operation = "view_own_rating"

	AdminStats       Operation = "admin_stats"
	AdminListUsers   Operation = "admin_list_users"
	AdminGetUser     Operation = "admin_get_user"
	AdminCreateUser  Operation = "admin_create_user"
	AdminUpdateRole  Operation = "admin_update_role"
	AdminListStores  Operation = "admin_list_stores"
	AdminCreateStore Operation = "admin_create_store"

	OwnerRatings Operation = "owner_ratings"
)

var everyone = []models.Role{models.RoleAdmin, models.RoleOwner, models.RoleUser}
var adminOnly = []models.Role{models.RoleAdmin}

// Policy maps each operation to the roles allowed to perform it. An
// operation missing from the table is denied to everyone.
var Policy = map[Operation][]models.Role{
	ChangePassword: everyone,
	RateStore:      everyone,
	ViewOwnRating:  everyone,

	AdminStats:       adminOnly,
	AdminListUsers:   adminOnly,
	AdminGetUser:     adminOnly,
	AdminCreateUser:  adminOnly,
	AdminUpdateRole:  adminOnly,
	AdminListStores:  adminOnly,
	AdminCreateStore: adminOnly,

	OwnerRatings: {models.RoleOwner},
}

// Allowed reports whether role may perform op.
func Allowed(op Operation, role models.Role) bool {
	for _, r := range Policy[op] {
		if r == role {
			return true
		}
	}
	return false
}
