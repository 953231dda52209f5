package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds process-level Prometheus metrics.
type Metrics struct {
	RegisteredAccounts prometheus.Gauge
	RegistryMutations  *prometheus.CounterVec
}

// New creates and registers all process-level metrics.
func New() *Metrics {
	return &Metrics{
		RegisteredAccounts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "callgate_registered_accounts",
			Help: "Number of accounts currently in the registry",
		}),
		RegistryMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "callgate_registry_mutations_total",
			Help: "Total registry mutations by operation",
		}, []string{"op"}), // op: "register", "unregister"
	}
}

// SetRegisteredAccounts records the current registry size.
func (m *Metrics) SetRegisteredAccounts(n int) {
	if m != nil {
		m.RegisteredAccounts.Set(float64(n))
	}
}

// IncrementMutation records a registry mutation.
func (m *Metrics) IncrementMutation(op string) {
	if m != nil {
		m.RegistryMutations.WithLabelValues(op).Inc()
	}
}
