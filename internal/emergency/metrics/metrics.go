package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for classification queries. "unavailable" means the
// authority could not confirm either way; callers still see false, the label
// exists for operators.
const (
	OutcomeConfirmed   = "confirmed"
	OutcomeNegative    = "negative"
	OutcomeUnavailable = "unavailable"
)

// Metrics provides observability for the emergency classification proxy.
type Metrics struct {
	// Classification outcomes by check kind ("local"/"potential") and outcome
	ClassificationOutcome *prometheus.CounterVec

	// Round-trip latency to the classification authority
	AuthorityLatency *prometheus.HistogramVec
}

// New creates a Metrics instance with all proxy metrics registered.
func New() *Metrics {
	return &Metrics{
		ClassificationOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "callgate_emergency_classifications_total",
			Help: "Total emergency number classification queries by kind and outcome",
		}, []string{"kind", "outcome"}),

		AuthorityLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "callgate_emergency_authority_duration_seconds",
			Help:    "Round-trip duration of classification authority queries",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"kind"}),
	}
}

// IncrementOutcome records a classification outcome.
func (m *Metrics) IncrementOutcome(kind, outcome string) {
	if m != nil {
		m.ClassificationOutcome.WithLabelValues(kind, outcome).Inc()
	}
}

// ObserveAuthorityLatency records one authority round trip.
func (m *Metrics) ObserveAuthorityLatency(kind string, d time.Duration) {
	if m != nil {
		m.AuthorityLatency.WithLabelValues(kind).Observe(d.Seconds())
	}
}
