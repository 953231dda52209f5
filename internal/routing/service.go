// Package routing is the call-manager decision service: which accounts can
// place a call, in what preference order, and whether a dial string must be
// processed as an emergency call before any account is consulted.
package routing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	"callgate/internal/domain"
	"callgate/internal/emergency"
	"callgate/internal/ranking"
	"callgate/internal/routing/metrics"
	"callgate/pkg/platform/audit"
	"callgate/pkg/requestcontext"
)

// Registry is the slice of the account service routing needs.
type Registry interface {
	Enabled(ctx context.Context) ([]domain.Account, error)
	Lookup() domain.SubscriptionLookup
}

// Screener answers emergency-number questions, fail-closed.
type Screener interface {
	IsLocalEmergencyNumber(ctx context.Context, address string) bool
	IsPotentialLocalEmergencyNumber(ctx context.Context, address string) bool
}

// ClassifyResult carries both answers for one address.
type ClassifyResult struct {
	Local     bool `json:"local"`
	Potential bool `json:"potential"`
}

// Service makes routing decisions over the account registry and the
// emergency screen.
type Service struct {
	registry Registry
	screener Screener

	logger  *slog.Logger
	metrics *metrics.Metrics
	auditor *audit.Publisher
	tracer  trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches routing metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAudit attaches an audit publisher for decision events.
func WithAudit(p *audit.Publisher) Option {
	return func(s *Service) { s.auditor = p }
}

// WithTracer attaches a tracer for decision spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// NewService wires a routing service over the registry and screener.
func NewService(registry Registry, screener Screener, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		screener: screener,
		tracer:   noop.NewTracerProvider().Tracer("callgate/routing"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SelectAccounts returns the enabled accounts in preference order. An empty
// registry yields the synthetic default emergency account alone, so a dialer
// always has somewhere to place an emergency call.
func (s *Service) SelectAccounts(ctx context.Context) ([]domain.Account, error) {
	ctx, span := s.tracer.Start(ctx, "routing.SelectAccounts")
	defer span.End()

	start := time.Now()
	enabled, err := s.registry.Enabled(ctx)
	if err != nil {
		return nil, err
	}

	outcome := "ranked"
	if len(enabled) == 0 {
		enabled = []domain.Account{emergency.DefaultAccount()}
		outcome = "default_emergency"
	} else {
		ranking.Rank(enabled, s.registry.Lookup())
	}

	s.metrics.IncrementSelection(outcome)
	s.metrics.ObserveSelectLatency(time.Since(start))
	if s.logger != nil {
		s.logger.DebugContext(ctx, "accounts selected",
			"count", len(enabled),
			"outcome", outcome,
		)
	}
	s.emitAudit(ctx, audit.Event{
		Category: audit.CategoryRouting,
		Action:   "select_accounts",
		Decision: outcome,
		Handle:   enabled[0].Handle.String(),
	})
	return enabled, nil
}

// ShouldProcessAsEmergency reports whether a dial URI must take the emergency
// path. An empty scheme-specific part is never an emergency; everything else
// is the screener's confirmed answer.
func (s *Service) ShouldProcessAsEmergency(ctx context.Context, uri string) bool {
	ctx, span := s.tracer.Start(ctx, "routing.ShouldProcessAsEmergency")
	defer span.End()

	address := domain.SchemeSpecificPart(uri)
	if address == "" {
		s.metrics.IncrementEmergencyScreen("ordinary")
		return false
	}

	isEmergency := s.screener.IsLocalEmergencyNumber(ctx, address)

	result := "ordinary"
	if isEmergency {
		result = "emergency"
	}
	s.metrics.IncrementEmergencyScreen(result)
	s.emitAudit(ctx, audit.Event{
		Category:    audit.CategoryRouting,
		Action:      "emergency_prescreen",
		Decision:    result,
		AddressHash: audit.HashAddress(address),
	})
	return isEmergency
}

// Classify runs the local and potential checks in parallel and reports both.
// The screener is fail-closed, so the checks cannot error; the group exists
// for shared cancellation.
func (s *Service) Classify(ctx context.Context, address string) ClassifyResult {
	ctx, span := s.tracer.Start(ctx, "routing.Classify")
	defer span.End()

	var result ClassifyResult
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		start := time.Now()
		result.Local = s.screener.IsLocalEmergencyNumber(ctx, address)
		s.metrics.ObserveCheckLatency("local", time.Since(start))
		return nil
	})
	g.Go(func() error {
		start := time.Now()
		result.Potential = s.screener.IsPotentialLocalEmergencyNumber(ctx, address)
		s.metrics.ObserveCheckLatency("potential", time.Since(start))
		return nil
	})
	_ = g.Wait()

	decision := "negative"
	switch {
	case result.Local:
		decision = "local"
	case result.Potential:
		decision = "potential"
	}
	s.emitAudit(ctx, audit.Event{
		Category:    audit.CategoryRouting,
		Action:      "classify",
		Decision:    decision,
		AddressHash: audit.HashAddress(address),
	})
	return result
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
	}
}
