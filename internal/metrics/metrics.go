package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipeharbor_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipeharbor_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipeharbor_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	RateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipeharbor_rate_limit_rejects_total",
			Help: "Total number of requests rejected due to rate limiting",
		},
	)

	PanicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipeharbor_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)

	// Store metrics
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipeharbor_store_operation_duration_seconds",
			Help:    "Document store round trip latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	StoreOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipeharbor_store_operation_errors_total",
			Help: "Total number of failed document store round trips",
		},
		[]string{"op"},
	)

	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipeharbor_search_total_elements",
			Help:    "Total matches reported by recipe searches",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

// ObserveStoreOp records the duration of a store call started at start, and counts it as failed if err is set.
func ObserveStoreOp(op string, start time.Time, err error) {
	StoreOpDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		StoreOpErrors.WithLabelValues(op).Inc()
	}
}
