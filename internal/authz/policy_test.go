package authz_test

import (
	"testing"

	"storerate/internal/authz"
	"storerate/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		op    authz.Operation
		admin bool
		owner bool
		user  bool
	}{
		{authz.ChangePassword, true, true, true},
		{authz.RateStore, true, true, true},
		{authz.ViewOwnRating, true, true, true},
		{authz.AdminStats, true, false, false},
		{authz.AdminListUsers, true, false, false},
		{authz.AdminGetUser, true, false, false},
		{authz.AdminCreateUser, true, false, false},
		{authz.AdminUpdateRole, true, false, false},
		{authz.AdminListStores, true, false, false},
		{authz.AdminCreateStore, true, false, false},
		{authz.OwnerRatings, false, true, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			assert.Equal(t, tt.admin, authz.Allowed(tt.op, models.RoleAdmin))
			assert.Equal(t, tt.owner, authz.Allowed(tt.op, models.RoleOwner))
			assert.Equal(t, tt.user, authz.Allowed(tt.op, models.RoleUser))
		})
	}
	assert.Len(t, authz.Policy, len(tests))
}

func TestAllowedDeniesUnknown(t *testing.T) {
	assert.False(t, authz.Allowed("delete_everything", models.RoleAdmin))
	assert.False(t, authz.Allowed(authz.RateStore, models.Role("superuser")))
	assert.False(t, authz.Allowed(authz.RateStore, ""))
}
