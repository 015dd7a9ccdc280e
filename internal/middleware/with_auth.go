package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/assignment-calendar-api/internal/utils"
)

const userIDKey = "user_id"

// UserID returns the user bound to the active request, or an empty string.
func UserID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Locals(userIDKey).(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

// AsUser binds a fixed user to every request passing through it. The demo
// routes use it to serve the shared sample calendar without a token.
func AsUser(userID string) fiber.Handler {
	userID = strings.TrimSpace(userID)
	return func(c *fiber.Ctx) error {
		if userID == "" {
			return utils.SendError(c, fiber.StatusNotFound, "demo calendar disabled")
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// RequireUser rejects requests that reached a handler without a bound user.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}
