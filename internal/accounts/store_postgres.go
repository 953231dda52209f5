package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"callgate/internal/domain"
	"callgate/pkg/platform/sentinel"
)

// PostgresStore persists the registry in PostgreSQL for deployments where
// registered accounts must survive restarts.
//
// Schema:
//
//	CREATE TABLE accounts (
//	    component_package TEXT NOT NULL,
//	    component_class   TEXT NOT NULL,
//	    handle_id         TEXT NOT NULL,
//	    label             TEXT NOT NULL DEFAULT '',
//	    capabilities      BIGINT NOT NULL,
//	    enabled           BOOLEAN NOT NULL,
//	    PRIMARY KEY (component_package, component_class, handle_id)
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT component_package, component_class, handle_id, label, capabilities, enabled
		FROM accounts
	`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, handle domain.AccountHandle) (domain.Account, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT component_package, component_class, handle_id, label, capabilities, enabled
		FROM accounts
		WHERE component_package = $1 AND component_class = $2 AND handle_id = $3
	`, handle.Component.Package, handle.Component.Class, handle.ID)

	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Account{}, sentinel.ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}
	return a, nil
}

func (s *PostgresStore) Put(ctx context.Context, account domain.Account) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (component_package, component_class, handle_id, label, capabilities, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (component_package, component_class, handle_id) DO UPDATE SET
			label = EXCLUDED.label,
			capabilities = EXCLUDED.capabilities,
			enabled = EXCLUDED.enabled
	`, account.Handle.Component.Package, account.Handle.Component.Class, account.Handle.ID,
		account.Label, int64(account.Capabilities), account.Enabled)
	if err != nil {
		return fmt.Errorf("put account: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, handle domain.AccountHandle) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM accounts
		WHERE component_package = $1 AND component_class = $2 AND handle_id = $3
	`, handle.Component.Package, handle.Component.Class, handle.ID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ReplaceAll(ctx context.Context, accounts []domain.Account) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("replace accounts: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM accounts`); err != nil {
		return fmt.Errorf("replace accounts: %w", err)
	}
	for _, a := range accounts {
		_, err := tx.Exec(ctx, `
			INSERT INTO accounts (component_package, component_class, handle_id, label, capabilities, enabled)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, a.Handle.Component.Package, a.Handle.Component.Class, a.Handle.ID,
			a.Label, int64(a.Capabilities), a.Enabled)
		if err != nil {
			return fmt.Errorf("replace accounts: %w", err)
		}
	}
	return tx.Commit(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a    domain.Account
		caps int64
	)
	err := row.Scan(
		&a.Handle.Component.Package,
		&a.Handle.Component.Class,
		&a.Handle.ID,
		&a.Label,
		&caps,
		&a.Enabled,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, err
		}
		return domain.Account{}, fmt.Errorf("scan account: %w", err)
	}
	a.Capabilities = domain.Capability(caps)
	return a, nil
}
