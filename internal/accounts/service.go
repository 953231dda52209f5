package accounts

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"callgate/internal/domain"
	dErrors "callgate/pkg/domain-errors"
	"callgate/pkg/platform/sentinel"
)

// Service wraps the registry store and maintains the subscription/slot table
// the ranker consults. The table is pushed by the telephony subsystem as SIMs
// appear and disappear; it lives in memory because it mirrors live hardware
// state, not durable data.
type Service struct {
	store  Store
	logger *slog.Logger

	mu   sync.RWMutex
	subs map[domain.AccountHandle]domain.Subscription
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates an account registry service over the given store.
func NewService(store Store, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("account store is required")
	}
	s := &Service{
		store: store,
		subs:  make(map[domain.AccountHandle]domain.Subscription),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register adds or replaces an account in the registry.
func (s *Service) Register(ctx context.Context, account domain.Account) error {
	if account.Handle.Component.IsZero() || account.Handle.ID == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "account handle is incomplete")
	}
	if err := s.store.Put(ctx, account); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "register account", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "account registered",
			"handle", account.Handle.String(),
			"capabilities", account.Capabilities,
			"enabled", account.Enabled,
		)
	}
	return nil
}

// Unregister removes an account and drops its subscription mapping.
func (s *Service) Unregister(ctx context.Context, handle domain.AccountHandle) error {
	if err := s.store.Delete(ctx, handle); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "account not registered")
		}
		return dErrors.Wrap(dErrors.CodeInternal, "unregister account", err)
	}

	s.mu.Lock()
	delete(s.subs, handle)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.InfoContext(ctx, "account unregistered", "handle", handle.String())
	}
	return nil
}

// List returns all registered accounts.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list accounts", err)
	}
	return accounts, nil
}

// Enabled returns registered accounts that are enabled.
func (s *Service) Enabled(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := accounts[:0]
	for _, a := range accounts {
		if a.Enabled {
			out = append(out, a)
		}
	}
	return out, nil
}

// SetSubscription records the carrier subscription backing a SIM account.
func (s *Service) SetSubscription(handle domain.AccountHandle, sub domain.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[handle] = sub
}

// ClearSubscription removes the mapping, e.g. when a SIM is ejected.
func (s *Service) ClearSubscription(handle domain.AccountHandle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, handle)
}

// Lookup exports the subscription table as the total lookup function the
// ranker expects: unknown handles yield the no-subscription sentinel.
func (s *Service) Lookup() domain.SubscriptionLookup {
	return func(handle domain.AccountHandle) domain.Subscription {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if sub, ok := s.subs[handle]; ok {
			return sub
		}
		return domain.NoSubscription()
	}
}
