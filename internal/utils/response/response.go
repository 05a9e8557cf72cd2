// Package response centralizes the JSON bodies handlers return.
package response

import (
	"github.com/gofiber/fiber/v2"
)

// Challenge sent with every 401 so clients know bearer authentication is
// required or the presented token is invalid.
const BearerChallenge = `Bearer error="invalid_token"`

func ServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"msg": "error",
	})
}

func Unauthorized(c *fiber.Ctx) error {
	c.Set(fiber.HeaderWWWAuthenticate, BearerChallenge)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"msg": "error",
	})
}

// ValidationFailed returns the structured 400 body with one entry per
// failing field.
func ValidationFailed(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"msg":    "error",
		"errors": errs,
	})
}
