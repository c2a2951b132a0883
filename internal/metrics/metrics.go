// Package metrics provides Prometheus metrics collection for the translation service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, route and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, route and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// ExportsTotal counts locale exports by outcome and source (cache or storage).
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "translation_exports_total",
			Help: "Total number of locale exports",
		},
		[]string{"status", "source"},
	)

	// ExportDuration tracks how long an export takes to assemble.
	ExportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "translation_export_duration_seconds",
			Help:    "Locale export duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	// ExportSize tracks the number of keys in each export.
	ExportSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "translation_export_keys",
			Help:    "Number of keys returned by a locale export",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
	)

	// SearchDuration tracks translation search latency.
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "translation_search_duration_seconds",
			Help:    "Translation search duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// StoreRetriesTotal counts store operations retried after a uniqueness violation.
	StoreRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "translation_store_retries_total",
			Help: "Store operations retried after a concurrent insert of the same key and locale",
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
		[]string{"cache"},
	)

	// CircuitBreakerState exposes each breaker's state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordExport records one export.
func RecordExport(duration time.Duration, keys int, status, source string) {
	ExportDuration.Observe(duration.Seconds())
	ExportsTotal.WithLabelValues(status, source).Inc()
	if status == "success" {
		ExportSize.Observe(float64(keys))
	}
}

// RecordSearch records one search.
func RecordSearch(duration time.Duration) {
	SearchDuration.Observe(duration.Seconds())
}

// RecordStoreRetry counts a retried store.
func RecordStoreRetry() {
	StoreRetriesTotal.Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// SetCircuitBreakerState records a breaker state transition.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
