package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/noah-isme/assignment-calendar-api/internal/events"
)

const (
	CorrelationHeader   = "X-Correlation-ID"
	correlationLocalKey = "correlation_id"
	maxCorrelationLen   = 128
)

// CorrelationID tags every request with an identifier, reusing the caller's
// X-Correlation-ID or X-Request-ID when it is usable. The id is echoed in the
// response header and bound to the user context, where assignment change
// events pick it up.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := usableCorrelationID(c.Get(CorrelationHeader))
		if id == "" {
			id = usableCorrelationID(c.Get(fiber.HeaderXRequestID))
		}
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(correlationLocalKey, id)
		c.Set(CorrelationHeader, id)
		c.SetUserContext(events.WithCorrelationID(c.UserContext(), id))

		return c.Next()
	}
}

// usableCorrelationID rejects ids that are too long or would break log lines.
func usableCorrelationID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" || len(id) > maxCorrelationLen {
		return ""
	}
	for _, r := range id {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return id
}

// CorrelationIDFromContext extracts the correlation identifier from context, if present.
func CorrelationIDFromContext(ctx context.Context) string {
	return events.CorrelationID(ctx)
}

// GetCorrelationID returns the correlation identifier bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals(correlationLocalKey).(string); ok {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}
