package validation_test

import (
	"encoding/json"
	"testing"

	"storerate/internal/apperr"
	"storerate/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupDTO struct {
	Name     string `json:"name" validate:"person_name"`
	Email    string `json:"email" validate:"email_shape"`
	Address  string `json:"address" validate:"address"`
	Password string `json:"password" validate:"password"`
	Role     string `json:"role" validate:"omitempty,role"`
}

type rateDTO struct {
	Rating json.Number `json:"rating" validate:"rating"`
}

func TestStructReportsFirstFailingFieldWithRuleReason(t *testing.T) {
	err := validation.Struct(signupDTO{
		Name:     "short",
		Email:    "not-an-email",
		Password: "abcdefgh",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Equal(t, "name", ae.Field)
	assert.Equal(t, validation.ErrNameTooShort.Error(), ae.Message)
}

func TestStructPasswordReason(t *testing.T) {
	err := validation.Struct(signupDTO{
		Name:     "Jane Quintessential Doe",
		Email:    "jane@example.com",
		Password: "abcdefgh",
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "password", ae.Field)
	assert.Equal(t, validation.ErrPasswordUppercase.Error(), ae.Message)
}

func TestStructAcceptsValidInput(t *testing.T) {
	assert.NoError(t, validation.Struct(signupDTO{
		Name:     "Jane Quintessential Doe",
		Email:    "jane@example.com",
		Password: "Abcdefg!",
	}))
	assert.NoError(t, validation.Struct(signupDTO{
		Name:     "Jane Quintessential Doe",
		Email:    "jane@example.com",
		Password: "Abcdefg!",
		Role:     "owner",
	}))
}

func TestStructRejectsUnknownRole(t *testing.T) {
	err := validation.Struct(signupDTO{
		Name:     "Jane Quintessential Doe",
		Email:    "jane@example.com",
		Password: "Abcdefg!",
		Role:     "root",
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "role", ae.Field)
	assert.Equal(t, validation.ErrRoleInvalid.Error(), ae.Message)
}

func TestStructRating(t *testing.T) {
	assert.NoError(t, validation.Struct(rateDTO{Rating: "5"}))

	for _, raw := range []json.Number{"", "0", "2.5", "9"} {
		ae := apperr.As(validation.Struct(rateDTO{Rating: raw}))
		require.NotNil(t, ae, "raw %q", raw)
		assert.Equal(t, "rating", ae.Field)
		assert.Equal(t, validation.ErrRatingOutOfRange.Error(), ae.Message)
	}
}
