package accounts

import (
	"context"
	"sync"

	"callgate/internal/domain"
	"callgate/pkg/platform/sentinel"
)

// InMemoryStore is the default registry backend for single-process
// deployments and tests.
type InMemoryStore struct {
	mu       sync.RWMutex
	accounts map[domain.AccountHandle]domain.Account
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{accounts: make(map[domain.AccountHandle]domain.Account)}
}

func (s *InMemoryStore) List(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (s *InMemoryStore) Get(_ context.Context, handle domain.AccountHandle) (domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[handle]
	if !ok {
		return domain.Account{}, sentinel.ErrNotFound
	}
	return a, nil
}

func (s *InMemoryStore) Put(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Handle] = account
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, handle domain.AccountHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[handle]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.accounts, handle)
	return nil
}

func (s *InMemoryStore) ReplaceAll(_ context.Context, accounts []domain.Account) error {
	next := make(map[domain.AccountHandle]domain.Account, len(accounts))
	for _, a := range accounts {
		next[a.Handle] = a
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = next
	return nil
}
