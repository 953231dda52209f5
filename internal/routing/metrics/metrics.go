package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the routing module.
type Metrics struct {
	// Account selection outcomes: "ranked" or "default_emergency"
	SelectionOutcome *prometheus.CounterVec

	// Emergency pre-screen decisions by result
	EmergencyScreen *prometheus.CounterVec

	// Parallel classification check latencies by check kind
	CheckLatency *prometheus.HistogramVec

	// Overall selection latency
	SelectLatency prometheus.Histogram
}

// New creates a Metrics instance with all routing metrics registered.
func New() *Metrics {
	return &Metrics{
		SelectionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "callgate_routing_selections_total",
			Help: "Total account selections by outcome",
		}, []string{"outcome"}), // outcome: "ranked", "default_emergency"

		EmergencyScreen: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "callgate_routing_emergency_screens_total",
			Help: "Total emergency pre-screen decisions by result",
		}, []string{"result"}), // result: "emergency", "ordinary"

		CheckLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "callgate_routing_check_duration_seconds",
			Help:    "Duration of individual classification checks by kind",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"check"}), // check: "local", "potential"

		SelectLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "callgate_routing_select_duration_seconds",
			Help:    "Duration of full account selection including ranking",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// IncrementSelection records an account selection outcome.
func (m *Metrics) IncrementSelection(outcome string) {
	if m != nil {
		m.SelectionOutcome.WithLabelValues(outcome).Inc()
	}
}

// IncrementEmergencyScreen records a pre-screen decision.
func (m *Metrics) IncrementEmergencyScreen(result string) {
	if m != nil {
		m.EmergencyScreen.WithLabelValues(result).Inc()
	}
}

// ObserveCheckLatency records the duration of one classification check.
func (m *Metrics) ObserveCheckLatency(check string, d time.Duration) {
	if m != nil {
		m.CheckLatency.WithLabelValues(check).Observe(d.Seconds())
	}
}

// ObserveSelectLatency records the total selection duration.
func (m *Metrics) ObserveSelectLatency(d time.Duration) {
	if m != nil {
		m.SelectLatency.Observe(d.Seconds())
	}
}
