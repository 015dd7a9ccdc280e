package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsHandlerExposesCollectors(t *testing.T) {
	ViewAssignments().WithLabelValues("calendar").Observe(4)
	SnapshotLookups().WithLabelValues("miss").Inc()

	app := fiber.New()
	app.Get("/metrics", MetricsHandler())

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), "planner_view_assignments"))
	require.True(t, strings.Contains(string(body), "snapshot_cache_lookups_total"))
}

func TestRegisterMetricsIsIdempotent(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(EventPublishFailures())
	EventPublishFailures().Inc()
	require.Equal(t, before+1, testutil.ToFloat64(EventPublishFailures()))
}
