package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// HTTPRequestsTotal counts finished requests. route is the chi pattern,
	// never the raw path, so codes do not blow up label cardinality.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency distributions.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPInflightRequests = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Current number of in-flight HTTP requests.",
		},
	)

	RegistrySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "shortener_registry_size",
			Help: "Number of short codes currently stored.",
		},
	)

	CodeCollisionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shortener_code_collisions_total",
			Help: "Generated short codes that were already taken and had to be redrawn.",
		},
	)
)

// Init registers the collectors with the default registry. Safe to call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDurationSeconds,
			HTTPInflightRequests,
			RegistrySize,
			CodeCollisionsTotal,
		)
	})
}
