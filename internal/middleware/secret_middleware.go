package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SecretRequired guards the command API with a shared-secret bearer
// credential compared by exact string equality. Responses never echo the
// expected value. An empty configured secret rejects every request.
func SecretRequired(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		if secret == "" || parts[1] != secret {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}

		return c.Next()
	}
}
