package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/assignment-calendar-api/internal/config"
	"github.com/noah-isme/assignment-calendar-api/internal/handler"
	"github.com/noah-isme/assignment-calendar-api/internal/middleware"
	"github.com/noah-isme/assignment-calendar-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssignmentHandler *handler.AssignmentHandler
	ViewHandler       *handler.ViewHandler
	PreferenceHandler *handler.PreferenceHandler
	Health            handler.HealthDependencies
	JWTMiddleware     fiber.Handler
	RateLimiter       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.Health))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	rateLimiter := deps.RateLimiter
	if rateLimiter == nil {
		rateLimiter = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Demo views must be registered before the secured group: its guard is
	// mounted on the shared /api/v1 prefix.
	if deps.ViewHandler != nil && cfg.DemoUserID != "" {
		demo := api.Group("/demo", rateLimiter, middleware.AsUser(cfg.DemoUserID))
		deps.ViewHandler.Register(demo)
	}

	secured := api.Group("", jwtMiddleware, middleware.RequireUser(), rateLimiter)

	if deps.ViewHandler != nil {
		deps.ViewHandler.Register(secured)
	}

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.Register(secured.Group("/assignments"))
	}

	if deps.PreferenceHandler != nil {
		deps.PreferenceHandler.Register(secured.Group("/preferences"))
	}
}
