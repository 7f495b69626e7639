package handlers

import (
	"storerate/internal/authz"
	"storerate/internal/middleware"
	"storerate/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OwnerHandler serves the store-owner dashboard.
type OwnerHandler struct {
	service *services.OwnerService
}

// NewOwnerHandler creates a new OwnerHandler.
func NewOwnerHandler(service *services.OwnerService) *OwnerHandler {
	return &OwnerHandler{service: service}
}

// RegisterRoutes registers the owner routes.
func (h *OwnerHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	ownerRoutes := router.Group("/owner", authRequired)
	ownerRoutes.Get("/ratings", middleware.Authorize(authz.OwnerRatings), h.HandleRatings)
}

// HandleRatings lists the ratings on the caller's stores and their average.
func (h *OwnerHandler) HandleRatings(c *fiber.Ctx) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	dashboard, err := h.service.Dashboard(c.UserContext(), ownerID)
	if err != nil {
		return err
	}
	return c.JSON(dashboard)
}
