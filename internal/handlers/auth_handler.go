package handlers

import (
	"storerate/internal/authz"
	"storerate/internal/middleware"
	"storerate/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the authentication routes. limiter covers every
// route in the group, change-password included.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, limiter, authRequired fiber.Handler) {
	authRoutes := router.Group("/auth", limiter)
	authRoutes.Post("/signup", h.HandleSignup)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/change-password", authRequired, middleware.Authorize(authz.ChangePassword), h.HandleChangePassword)
}

// HandleSignup handles new user registration.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req services.SignupInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req services.LoginInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// HandleChangePassword replaces the caller's password.
func (h *AuthHandler) HandleChangePassword(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req services.ChangePasswordInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(c.UserContext(), userID, req); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}
