package validation_test

import (
	"encoding/json"
	"strings"
	"testing"

	"storerate/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", validation.ErrNameRequired},
		{"blank", "    ", validation.ErrNameRequired},
		{"19 chars", strings.Repeat("a", 19), validation.ErrNameTooShort},
		{"20 chars", strings.Repeat("a", 20), nil},
		{"60 chars", strings.Repeat("a", 60), nil},
		{"61 chars", strings.Repeat("a", 61), validation.ErrNameTooLong},
		{"trimmed before counting", "  " + strings.Repeat("b", 19) + "  ", validation.ErrNameTooShort},
		{"placeholder prefix", "testuser with a long enough name", validation.ErrNamePlaceholder},
		{"placeholder prefix any case", "TestUser with a long enough name", validation.ErrNamePlaceholder},
		{"placeholder elsewhere is fine", "Jane the testuser of many stores", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validation.Name(tc.in))
		})
	}
}

func TestEmail(t *testing.T) {
	assert.NoError(t, validation.Email("jane@example.com"))
	assert.NoError(t, validation.Email("JANE@Example.COM"))
	assert.Equal(t, validation.ErrEmailInvalid, validation.Email(""))
	assert.Equal(t, validation.ErrEmailInvalid, validation.Email("jane@example"))
	assert.Equal(t, validation.ErrEmailInvalid, validation.Email("jane example@x.com"))
	assert.Equal(t, validation.ErrEmailInvalid, validation.Email("@example.com"))

	assert.Equal(t, "jane@example.com", validation.NormalizeEmail("  Jane@Example.COM "))
}

func TestAddress(t *testing.T) {
	assert.NoError(t, validation.Address(""))
	assert.NoError(t, validation.Address(strings.Repeat("x", 400)))
	assert.Equal(t, validation.ErrAddressTooLong, validation.Address(strings.Repeat("x", 401)))

	assert.Equal(t, validation.ErrAddressRequired, validation.StoreAddress(" "))
	assert.Equal(t, validation.ErrAddressTooLong, validation.StoreAddress(strings.Repeat("x", 401)))
	assert.NoError(t, validation.StoreAddress("12 Market Street"))
}

func TestStoreName(t *testing.T) {
	assert.Equal(t, validation.ErrStoreNameRequired, validation.StoreName(""))
	assert.Equal(t, validation.ErrStoreNameRequired, validation.StoreName("   "))
	assert.NoError(t, validation.StoreName("Corner Shop"))
}

func TestPassword(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"", validation.ErrPasswordRequired},
		{"Ab!defg", validation.ErrPasswordLength},
		{"Abcdefghijklmno!x", validation.ErrPasswordLength},
		{"abcdefgh", validation.ErrPasswordUppercase},
		{"Abcdefgh", validation.ErrPasswordSpecial},
		{"Abcdefg!", nil},
		{"Abcdefghijklmn!x", nil},
		{`Quote"pass1`, nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, validation.Password(tc.in), "password %q", tc.in)
	}
}

func TestRating(t *testing.T) {
	for v := 1; v <= 5; v++ {
		assert.NoError(t, validation.Rating(v))
	}
	assert.Equal(t, validation.ErrRatingOutOfRange, validation.Rating(0))
	assert.Equal(t, validation.ErrRatingOutOfRange, validation.Rating(6))

	for _, raw := range []string{"4", "4.0", "4e0", "4.000"} {
		v, err := validation.ParseRating(json.Number(raw))
		assert.NoError(t, err, "raw %q", raw)
		assert.Equal(t, 4, v)
	}

	for _, raw := range []string{"3.5", "4.01", "", "six", "0", "-1", "10", "5.5", "1e400", "NaN"} {
		_, err := validation.ParseRating(json.Number(raw))
		assert.Equal(t, validation.ErrRatingOutOfRange, err, "raw %q", raw)
	}
}

func TestRole(t *testing.T) {
	assert.NoError(t, validation.Role("admin"))
	assert.NoError(t, validation.Role("owner"))
	assert.NoError(t, validation.Role("user"))
	assert.Equal(t, validation.ErrRoleInvalid, validation.Role("superuser"))
	assert.Equal(t, validation.ErrRoleInvalid, validation.Role("Admin"))
}
