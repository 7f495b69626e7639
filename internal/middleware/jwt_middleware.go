// Package middleware holds the fiber middleware guarding the API: bearer
// authentication, the role gate, auth rate limiting and error rendering.
package middleware

import (
	"context"
	"strings"

	"storerate/internal/apperr"
	"storerate/internal/models"

	"github.com/gofiber/fiber/v2"
)

const currentUserKey = "current_user"

// Authenticator resolves a bearer token to the user it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.CurrentUser, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token. On
// success the resolved user is stored for CurrentUser.
func AuthRequired(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Expected format: "Bearer <token>"
		parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return apperr.Unauthorized("No token provided")
		}

		user, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}

		c.Locals(currentUserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired, or nil on public routes.
func CurrentUser(c *fiber.Ctx) *models.CurrentUser {
	user, _ := c.Locals(currentUserKey).(*models.CurrentUser)
	return user
}
