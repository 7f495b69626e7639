// Package handlers exposes the services over HTTP with fiber.
package handlers

import (
	"log"
	"strconv"

	"storerate/internal/apperr"
	"storerate/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// parseBody decodes the JSON request body into dst.
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		log.Printf("Error parsing %s %s request body: %v", c.Method(), c.Path(), err)
		return apperr.Validation("", "Invalid request body")
	}
	return nil
}

// paramID reads a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 0)
	if err != nil || id == 0 {
		return 0, apperr.Validation(name, "Invalid "+name)
	}
	return uint(id), nil
}

// currentUserID returns the authenticated caller's ID.
func currentUserID(c *fiber.Ctx) (uint, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return 0, apperr.Unauthorized("Unauthorized")
	}
	return user.ID, nil
}
