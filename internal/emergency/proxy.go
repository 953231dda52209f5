package emergency

import (
	"context"
	"log/slog"
	"time"

	"callgate/internal/emergency/metrics"
)

// Proxy is the call-manager-facing surface of the classification authority.
// It is deliberately fail-closed: inability to confirm emergency status must
// never be treated as "is emergency", so any transport failure, absent
// classifier, or open circuit collapses to false. Callers must read false as
// "not confirmed", never as a hard negative.
//
// The proxy keeps no state between calls and performs no retries, caching,
// or backoff: every query is a single best-effort synchronous round trip.
type Proxy struct {
	classifier Classifier
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// ProxyOption configures a Proxy.
type ProxyOption func(*Proxy)

// WithLogger attaches a logger for absorbed failures.
func WithLogger(logger *slog.Logger) ProxyOption {
	return func(p *Proxy) { p.logger = logger }
}

// WithMetrics attaches outcome counters.
func WithMetrics(m *metrics.Metrics) ProxyOption {
	return func(p *Proxy) { p.metrics = m }
}

// NewProxy wraps a classifier. A nil classifier behaves like Unavailable.
func NewProxy(classifier Classifier, opts ...ProxyOption) *Proxy {
	if classifier == nil {
		classifier = Unavailable{}
	}
	p := &Proxy{classifier: classifier}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsLocalEmergencyNumber reports whether the address is confirmed to be a
// local emergency number. False on any doubt.
func (p *Proxy) IsLocalEmergencyNumber(ctx context.Context, address string) bool {
	return p.classify(ctx, "local", address, p.classifier.IsLocalEmergencyNumber)
}

// IsPotentialLocalEmergencyNumber reports whether the address is confirmed to
// potentially resolve to a local emergency number. False on any doubt.
func (p *Proxy) IsPotentialLocalEmergencyNumber(ctx context.Context, address string) bool {
	return p.classify(ctx, "potential", address, p.classifier.IsPotentialLocalEmergencyNumber)
}

func (p *Proxy) classify(ctx context.Context, kind, address string, query func(context.Context, string) (bool, error)) bool {
	start := time.Now()
	match, err := query(ctx, address)
	p.metrics.ObserveAuthorityLatency(kind, time.Since(start))

	if err != nil {
		// Absorbed: the caller gets the safe negative either way.
		if p.logger != nil {
			p.logger.WarnContext(ctx, "emergency classification unavailable",
				"kind", kind,
				"error", err,
			)
		}
		p.metrics.IncrementOutcome(kind, metrics.OutcomeUnavailable)
		return false
	}

	if match {
		p.metrics.IncrementOutcome(kind, metrics.OutcomeConfirmed)
	} else {
		p.metrics.IncrementOutcome(kind, metrics.OutcomeNegative)
	}
	return match
}
