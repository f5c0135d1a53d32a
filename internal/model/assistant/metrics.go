package assistant

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	histogramResponseTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "expenses",
			Subsystem: "assistant",
			Name:      "histogram_response_time_seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"outcome"},
	)
	counterCommands = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "expenses",
			Subsystem: "assistant",
			Name:      "applied_commands_total",
		},
		[]string{"kind"},
	)
)

func observeResponse(elapsed time.Duration, outcome string) {
	histogramResponseTime.
		WithLabelValues(outcome).
		Observe(elapsed.Seconds())
}

func countCommand(kind string) {
	counterCommands.WithLabelValues(kind).Inc()
}
