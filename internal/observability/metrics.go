// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"sync"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atelier_redis_error_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "atelier_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// CascadeStepFailures counts cascade-deletion sub-steps that were
	// tolerated and skipped.
	CascadeStepFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atelier_cascade_step_failures_total",
		Help: "Total number of tolerated cascade deletion sub-step failures",
	}, []string{"entity", "step"})

	// UploadsTotal counts accepted file uploads by detected format.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "atelier_uploads_total",
		Help: "Total number of accepted file uploads by image format",
	}, []string{"format"})

	// PreferenceRollbacks counts optimistic preference updates that were
	// rolled back after a failed persist.
	PreferenceRollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "atelier_preference_rollbacks_total",
		Help: "Total number of rolled-back preference updates",
	})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the fiberprometheus middleware for the given service
// name. The instance is shared: fiberprometheus registers its collectors in
// the default registry, so creating a second one would panic.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware returns the Fiber handler recording HTTP metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
