// Package validation holds the input rules shared by every entry point that
// accepts user, store, password or rating fields.
package validation

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"storerate/internal/models"
)

const (
	NameMinLen       = 20
	NameMaxLen       = 60
	AddressMaxLen    = 400
	PasswordMinLen   = 8
	PasswordMaxLen   = 16
	RatingMin        = 1
	RatingMax        = 5
	placeholderName  = "testuser"
	passwordSpecials = `!@#$%^&*(),.?":{}|<>`
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Rejection reasons. They are returned verbatim to API callers.
var (
	ErrNameRequired       = errors.New("Name is required")
	ErrNameTooShort       = errors.New("Name must be at least 20 characters.")
	ErrNameTooLong        = errors.New("Name must be at most 60 characters.")
	ErrNamePlaceholder    = errors.New("Please provide a real name, not a placeholder.")
	ErrEmailInvalid       = errors.New("Invalid email")
	ErrAddressRequired    = errors.New("Address is required")
	ErrAddressTooLong     = errors.New("Address must be at most 400 characters.")
	ErrStoreNameRequired  = errors.New("Store name is required.")
	ErrPasswordRequired   = errors.New("Password is required")
	ErrPasswordLength     = errors.New("Password must be 8-16 characters.")
	ErrPasswordUppercase  = errors.New("Password must contain at least one uppercase letter.")
	ErrPasswordSpecial    = errors.New("Password must contain at least one special character.")
	ErrRatingOutOfRange   = errors.New("Rating must be an integer between 1 and 5")
	ErrRoleInvalid        = errors.New("Invalid role")
	ErrOldPasswordMissing = errors.New("Old password is required")
)

// Name checks a person's display name.
func Name(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	n := utf8.RuneCountInString(trimmed)
	if n < NameMinLen {
		return ErrNameTooShort
	}
	if n > NameMaxLen {
		return ErrNameTooLong
	}
	if strings.HasPrefix(strings.ToLower(trimmed), placeholderName) {
		return ErrNamePlaceholder
	}
	return nil
}

// Email checks the minimal local@domain.tld shape. Callers lowercase the
// address with NormalizeEmail before storing or comparing it.
func Email(email string) error {
	if email == "" || !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// NormalizeEmail returns the canonical stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Address checks an optional user address.
func Address(address string) error {
	if utf8.RuneCountInString(address) > AddressMaxLen {
		return ErrAddressTooLong
	}
	return nil
}

// StoreAddress checks a store address, which is mandatory.
func StoreAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return ErrAddressRequired
	}
	return Address(address)
}

// StoreName checks a store name.
func StoreName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrStoreNameRequired
	}
	return nil
}

// Password checks a new password against the password policy.
func Password(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	n := utf8.RuneCountInString(password)
	if n < PasswordMinLen || n > PasswordMaxLen {
		return ErrPasswordLength
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return ErrPasswordUppercase
	}
	if !strings.ContainsAny(password, passwordSpecials) {
		return ErrPasswordSpecial
	}
	return nil
}

// Rating checks a rating value.
func Rating(value int) error {
	if value < RatingMin || value > RatingMax {
		return ErrRatingOutOfRange
	}
	return nil
}

// ParseRating converts a raw JSON number into a rating value. Any number
// whose value is whole is accepted (4, 4.0, 4e0); 3.5 is not.
func ParseRating(raw json.Number) (int, error) {
	f, err := strconv.ParseFloat(raw.String(), 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, ErrRatingOutOfRange
	}
	if f < RatingMin || f > RatingMax {
		return 0, ErrRatingOutOfRange
	}
	return int(f), nil
}

// Role checks a role name.
func Role(role string) error {
	if _, err := models.ParseRole(role); err != nil {
		return ErrRoleInvalid
	}
	return nil
}
