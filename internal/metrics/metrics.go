package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"semantic-exit/exitcodes"
)

var (
	initOnce sync.Once

	// Registry holds every semexit collector. It is separate from the
	// default registry so textfile output contains only our series.
	Registry = prometheus.NewRegistry()

	// ExitsTotal counts observed exit statuses.
	ExitsTotal *prometheus.CounterVec

	// LastExitTimestamp is the unix time of the most recent observation.
	LastExitTimestamp prometheus.Gauge
)

// Init creates and registers all collectors. Safe to call repeatedly.
func Init() {
	initOnce.Do(func() {
		ExitsTotal = NewCounterVec(
			"semexit_exits_total",
			"Observed process exit statuses by semantic category.",
			[]string{"status", "name", "category"},
		)
		LastExitTimestamp = NewGauge(
			"semexit_last_exit_timestamp_seconds",
			"Unix time of the most recently observed exit status.",
		)
		initAPIMetrics()

		Registry.MustRegister(ExitsTotal, LastExitTimestamp)
		registerAPIMetrics()
		Registry.MustRegister(collectors.NewGoCollector())
	})
}

func exitLabels(status int) prometheus.Labels {
	name := ""
	if code, err := exitcodes.Parse(status); err == nil {
		name = code.String()
	}
	return prometheus.Labels{
		"status":   strconv.Itoa(status),
		"name":     name,
		"category": exitcodes.Classify(status).String(),
	}
}

// ObserveExit counts one exit status seen at at.
func ObserveExit(status int, at time.Time) {
	Init()
	ExitsTotal.With(exitLabels(status)).Inc()
	LastExitTimestamp.Set(float64(at.Unix()))
}

// Seed adds historical per-status counts, typically loaded from the
// history database at startup.
func Seed(counts map[int]int64) {
	Init()
	for status, n := range counts {
		ExitsTotal.With(exitLabels(status)).Add(float64(n))
	}
}

// SetLastExit updates the last observation timestamp without counting.
func SetLastExit(at time.Time) {
	Init()
	LastExitTimestamp.Set(float64(at.Unix()))
}

// WriteTextfile writes the registry in the text exposition format for the
// node_exporter textfile collector. The write is atomic.
func WriteTextfile(path string) error {
	Init()
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// Handler serves the registry at /metrics.
func Handler() http.Handler {
	Init()
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
