// Package accounts holds the live registry of calling accounts the routing
// service reads. The registry is written by the account-registration
// subsystem through the admin API; routing never mutates accounts.
package accounts

import (
	"context"

	"callgate/internal/domain"
)

// Store persists registered accounts keyed by handle.
type Store interface {
	// List returns all registered accounts in unspecified order.
	List(ctx context.Context) ([]domain.Account, error)

	// Get returns the account for the handle or sentinel.ErrNotFound.
	Get(ctx context.Context, handle domain.AccountHandle) (domain.Account, error)

	// Put inserts or replaces the account under its handle.
	Put(ctx context.Context, account domain.Account) error

	// Delete removes the account or returns sentinel.ErrNotFound.
	Delete(ctx context.Context, handle domain.AccountHandle) error

	// ReplaceAll atomically swaps the registry contents, used when the
	// registration subsystem pushes a full snapshot.
	ReplaceAll(ctx context.Context, accounts []domain.Account) error
}
