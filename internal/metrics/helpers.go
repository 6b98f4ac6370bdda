package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// APIBuckets: 1ms to 1s, lookups are in-memory
var APIBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

// NewCounterVec creates a labeled counter
func NewCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: name,
		Help: help,
	}, labels)
}

// NewGauge creates a standard gauge metric
func NewGauge(name, help string) prometheus.Gauge {
	return prometheus.NewGauge(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	})
}
