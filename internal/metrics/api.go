package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// API/HTTP subsystem metrics
var (
	// HTTPRequestDuration tracks lookup API latency
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsTotal tracks lookup API requests by handler, method, status
	HTTPRequestsTotal *prometheus.CounterVec
)

func initAPIMetrics() {
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "semexit_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: APIBuckets,
		},
		[]string{"handler", "method", "status"},
	)

	HTTPRequestsTotal = NewCounterVec(
		"semexit_api_requests_total",
		"Total HTTP requests processed by the lookup API.",
		[]string{"handler", "method", "status"},
	)
}

func registerAPIMetrics() {
	Registry.MustRegister(HTTPRequestDuration)
	Registry.MustRegister(HTTPRequestsTotal)
}
