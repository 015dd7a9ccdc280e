package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/assignment-calendar-api/internal/middleware"
	"github.com/noah-isme/assignment-calendar-api/internal/observability"
)

func TestRegisterRecordsAPIMetrics(t *testing.T) {
	logger := zerolog.Nop()
	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	app.Get("/api/v1/things/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})
	app.Get("/outside", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	requests := observability.APIRequests().WithLabelValues(http.MethodGet, "/api/v1/things/:id", "418")
	errorsTotal := observability.APIErrors().WithLabelValues(http.MethodGet, "/api/v1/things/:id", "418")
	beforeRequests := testutil.ToFloat64(requests)
	beforeErrors := testutil.ToFloat64(errorsTotal)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/things/7", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/outside", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Equal(t, beforeRequests+1, testutil.ToFloat64(requests))
	require.Equal(t, beforeErrors+1, testutil.ToFloat64(errorsTotal))
}

func TestRegisterRecoversFromPanics(t *testing.T) {
	app := fiber.New()
	middleware.Register(app, middleware.Config{})
	app.Get("/api/v1/boom", func(c *fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/boom", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
