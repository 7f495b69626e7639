package middleware

import (
	"errors"
	"log"

	"storerate/internal/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders every error returned by a handler as
// {"code", "message", "field"?}. Unknown errors become a generic 500 and
// are logged; their detail never reaches the client.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if ae := apperr.As(err); ae != nil {
		if ae.Cause != nil {
			log.Printf("%s %s: %v", c.Method(), c.Path(), ae.Cause)
		}
		return c.Status(ae.Status).JSON(ae)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"code":    codeForStatus(fe.Code),
			"message": fe.Message,
		})
	}

	log.Printf("%s %s: unhandled error: %v", c.Method(), c.Path(), err)
	generic := apperr.Storage(err)
	return c.Status(generic.Status).JSON(generic)
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return apperr.CodeValidation
	case fiber.StatusUnauthorized:
		return apperr.CodeUnauthorized
	case fiber.StatusForbidden:
		return apperr.CodeForbidden
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return apperr.CodeNotFound
	case fiber.StatusConflict:
		return apperr.CodeConflict
	case fiber.StatusTooManyRequests:
		return apperr.CodeRateLimited
	}
	return apperr.CodeStorage
}
