package middleware

import (
	"storerate/internal/apperr"
	"storerate/internal/authz"

	"github.com/gofiber/fiber/v2"
)

// Authorize lets the request through only when the authenticated user's role
// may perform op. It must run after AuthRequired.
func Authorize(op authz.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return apperr.Unauthorized("No token provided")
		}
		if !authz.Allowed(op, user.Role) {
			return apperr.Forbidden("Insufficient permissions")
		}
		return c.Next()
	}
}
