//go:build integration

package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callgate/internal/domain"
	"callgate/pkg/platform/sentinel"
	"callgate/pkg/testutil/containers"
)

const accountsSchema = `
CREATE TABLE IF NOT EXISTS accounts (
    component_package TEXT NOT NULL,
    component_class   TEXT NOT NULL,
    handle_id         TEXT NOT NULL,
    label             TEXT NOT NULL DEFAULT '',
    capabilities      BIGINT NOT NULL,
    enabled           BOOLEAN NOT NULL,
    PRIMARY KEY (component_package, component_class, handle_id)
)`

func TestPostgresStore_Integration(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	_, err := pc.Pool.Exec(ctx, accountsSchema)
	require.NoError(t, err)

	store := NewPostgresStore(pc.Pool)

	truncate := func(t *testing.T) {
		t.Helper()
		_, err := pc.Pool.Exec(ctx, `TRUNCATE accounts`)
		require.NoError(t, err)
	}

	t.Run("put get delete roundtrip", func(t *testing.T) {
		truncate(t)

		account := testAccount("com.example.carrier", "sub0")
		require.NoError(t, store.Put(ctx, account))

		got, err := store.Get(ctx, account.Handle)
		require.NoError(t, err)
		assert.Equal(t, account, got)

		require.NoError(t, store.Delete(ctx, account.Handle))
		_, err = store.Get(ctx, account.Handle)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("put upserts on conflict", func(t *testing.T) {
		truncate(t)

		account := testAccount("com.example.carrier", "sub0")
		require.NoError(t, store.Put(ctx, account))

		account.Enabled = false
		account.Label = "Renamed"
		require.NoError(t, store.Put(ctx, account))

		got, err := store.Get(ctx, account.Handle)
		require.NoError(t, err)
		assert.False(t, got.Enabled)
		assert.Equal(t, "Renamed", got.Label)

		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("replace all is transactional", func(t *testing.T) {
		truncate(t)

		require.NoError(t, store.Put(ctx, testAccount("old", "a")))
		require.NoError(t, store.ReplaceAll(ctx, []domain.Account{
			testAccount("new", "b"),
			testAccount("new", "c"),
		}))

		all, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)

		_, err = store.Get(ctx, testAccount("old", "a").Handle)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
