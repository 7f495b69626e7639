package handlers

import (
	"encoding/json"

	"storerate/internal/apperr"
	"storerate/internal/authz"
	"storerate/internal/middleware"
	"storerate/internal/services"
	"storerate/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// StoreHandler handles HTTP requests for browsing and rating stores.
type StoreHandler struct {
	service *services.StoreService
}

// NewStoreHandler creates a new StoreHandler.
func NewStoreHandler(service *services.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

// RegisterRoutes registers the store routes. Listing is public.
func (h *StoreHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler) {
	storeRoutes := router.Group("/stores")
	storeRoutes.Get("/", h.HandleListStores)
	storeRoutes.Post("/:id/rate", authRequired, middleware.Authorize(authz.RateStore), h.HandleRateStore)
	storeRoutes.Get("/:id/rating", authRequired, middleware.Authorize(authz.ViewOwnRating), h.HandleGetOwnRating)
}

// HandleListStores lists every store with its average rating.
func (h *StoreHandler) HandleListStores(c *fiber.Ctx) error {
	stores, err := h.service.ListStores(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stores)
}

// rateRequest keeps the raw number so that 4.5 is rejected with the rating
// message rather than a decoding error.
type rateRequest struct {
	Rating json.Number `json:"rating"`
}

// HandleRateStore creates or overwrites the caller's rating of a store.
func (h *StoreHandler) HandleRateStore(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	storeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req rateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperr.Validation("rating", validation.ErrRatingOutOfRange.Error())
	}
	value, err := validation.ParseRating(req.Rating)
	if err != nil {
		return apperr.Validation("rating", err.Error())
	}

	rating, created, err := h.service.SubmitRating(c.UserContext(), userID, storeID, value)
	if err != nil {
		return err
	}

	message := "Rating updated"
	if created {
		message = "Rating added"
	}
	return c.JSON(fiber.Map{
		"message": message,
		"rating":  rating,
	})
}

// HandleGetOwnRating returns the caller's rating of a store next to the
// store's current average.
func (h *StoreHandler) HandleGetOwnRating(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	storeID, err := paramID(c, "id")
	if err != nil {
		return err
	}

	rating, err := h.service.UserRating(c.UserContext(), userID, storeID)
	if err != nil {
		return err
	}
	avg, err := h.service.StoreAverage(c.UserContext(), storeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"rating":        rating,
		"averageRating": avg,
	})
}
