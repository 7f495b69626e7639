package services

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OwnerRef is the optional owner of a store in an admin request. It decodes
// from a number, a numeric string, "" or null; the last two mean no owner.
// Anything else decodes without error but is reported by Valid, so the
// caller can answer with a field-level validation error.
type OwnerRef struct {
	ID      *uint
	invalid bool
}

// OwnerOf returns a reference to user id.
func OwnerOf(id uint) OwnerRef {
	return OwnerRef{ID: &id}
}

// Valid reports whether the decoded value was an acceptable owner id.
func (r OwnerRef) Valid() bool {
	return !r.invalid
}

func (r *OwnerRef) UnmarshalJSON(data []byte) error {
	*r = OwnerRef{}
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			r.invalid = true
			return nil
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}
	id, err := strconv.ParseUint(raw, 10, strconv.IntSize)
	if err != nil || id == 0 {
		r.invalid = true
		return nil
	}
	owner := uint(id)
	r.ID = &owner
	return nil
}

func (r OwnerRef) MarshalJSON() ([]byte, error) {
	if r.ID == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*r.ID)
}
