// Package metrics exposes command counters for prometheus scraping.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kanban",
		Name:      "actions_total",
		Help:      "Total number of kanban commands broken down by action and outcome.",
	}, []string{"action", "outcome"})

	actionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "kanban",
		Name:      "action_duration_seconds",
		Help:      "Latency distribution for kanban commands.",
		Buckets: []float64{
			0.001, 0.005, 0.01, 0.025, 0.05,
			0.1, 0.25, 0.5, 1, 2.5, 5,
		},
	}, []string{"action"})
)

// Observe records one finished command. outcome is "ok" or an error kind.
func Observe(action, outcome string, elapsed time.Duration) {
	actionsTotal.WithLabelValues(action, outcome).Inc()
	actionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}
