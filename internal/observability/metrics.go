package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	viewAssignmentsSize   *prometheus.HistogramVec
	snapshotLookupsTotal  *prometheus.CounterVec
	eventPublishFailTotal prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "calendar_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "calendar_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		viewAssignmentsSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_view_assignments",
			Help:    "Number of assignments fed into each planner view.",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"view"})

		snapshotLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "snapshot_cache_lookups_total",
			Help: "Assignment snapshot cache lookups by result.",
		}, []string{"result"})

		eventPublishFailTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "assignment_event_publish_failures_total",
			Help: "Assignment change events that could not be published.",
		})

		prometheus.MustRegister(apiRequestsTotal, apiLatencySeconds, apiErrorsTotal, viewAssignmentsSize, snapshotLookupsTotal, eventPublishFailTotal)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// ViewAssignments records how many assignments each view processed.
func ViewAssignments() *prometheus.HistogramVec {
	RegisterMetrics()
	return viewAssignmentsSize
}

// SnapshotLookups counts cache hits and misses for assignment snapshots.
func SnapshotLookups() *prometheus.CounterVec {
	RegisterMetrics()
	return snapshotLookupsTotal
}

// EventPublishFailures counts change events that failed to publish.
func EventPublishFailures() prometheus.Counter {
	RegisterMetrics()
	return eventPublishFailTotal
}

// MetricsHandler exposes the default Prometheus registry via Fiber.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
