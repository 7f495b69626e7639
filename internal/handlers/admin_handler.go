package handlers

import (
	"storerate/internal/authz"
	"storerate/internal/middleware"
	"storerate/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the administrative HTTP endpoints.
type AdminHandler struct {
	service *services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(service *services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterRoutes registers the admin routes, each behind its own policy entry.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	adminRoutes := router.Group("/admin", authRequired)
	adminRoutes.Get("/stats", middleware.Authorize(authz.AdminStats), h.HandleStats)
	adminRoutes.Get("/users", middleware.Authorize(authz.AdminListUsers), h.HandleListUsers)
	adminRoutes.Post("/users", middleware.Authorize(authz.AdminCreateUser), h.HandleCreateUser)
	adminRoutes.Get("/users/:id", middleware.Authorize(authz.AdminGetUser), h.HandleGetUser)
	adminRoutes.Patch("/users/:id/role", middleware.Authorize(authz.AdminUpdateRole), h.HandleUpdateRole)
	adminRoutes.Get("/stores", middleware.Authorize(authz.AdminListStores), h.HandleListStores)
	adminRoutes.Post("/stores", middleware.Authorize(authz.AdminCreateStore), h.HandleCreateStore)
}

// HandleStats returns the user, store and rating counts.
func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *AdminHandler) HandleGetUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// HandleCreateUser creates a user with any role.
func (h *AdminHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req services.CreateUserInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.service.CreateUser(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleUpdateRole changes a user's role.
func (h *AdminHandler) HandleUpdateRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req services.UpdateRoleInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.service.UpdateRole(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *AdminHandler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.service.ListStores(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stores)
}

// HandleCreateStore creates a store, optionally assigned to an owner.
func (h *AdminHandler) HandleCreateStore(c *fiber.Ctx) error {
	var req services.CreateStoreInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	store, err := h.service.CreateStore(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(store)
}
