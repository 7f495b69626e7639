// Package apperr defines the errors that leave the service layer and how
// they map onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes returned to clients.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeStorage      = "INTERNAL_ERROR"
)

// Error is the canonical application error. Message is safe to show to the
// caller; Cause is only ever logged.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Validation reports policy-violating input on field.
func Validation(field, msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg, Field: field, Status: fiber.StatusBadRequest}
}

// Unauthorized reports a missing, invalid or expired credential.
func Unauthorized(msg string) *Error {
	return &Error{Code: CodeUnauthorized, Message: msg, Status: fiber.StatusUnauthorized}
}

// Forbidden reports an authenticated caller lacking the required role.
func Forbidden(msg string) *Error {
	return &Error{Code: CodeForbidden, Message: msg, Status: fiber.StatusForbidden}
}

// NotFound reports a missing referenced entity.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg, Status: fiber.StatusNotFound}
}

// Conflict reports a uniqueness violation, e.g. a duplicate email.
func Conflict(msg string) *Error {
	return &Error{Code: CodeConflict, Message: msg, Status: fiber.StatusConflict}
}

// RateLimited reports too many attempts from one client.
func RateLimited(msg string) *Error {
	return &Error{Code: CodeRateLimited, Message: msg, Status: fiber.StatusTooManyRequests}
}

// Storage wraps an unexpected storage failure. The cause is never sent to the client.
func Storage(cause error) *Error {
	return &Error{
		Code:    CodeStorage,
		Message: "An unexpected error occurred",
		Status:  fiber.StatusInternalServerError,
		Cause:   cause,
	}
}

// As extracts an *Error from err's chain, or returns nil.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// Is reports whether err carries an *Error with the given code.
func Is(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
