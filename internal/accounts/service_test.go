package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callgate/internal/domain"
	dErrors "callgate/pkg/domain-errors"
)

func TestNewService_RequiresStore(t *testing.T) {
	_, err := NewService(nil)
	assert.Error(t, err)
}

func TestService_RegisterValidatesHandle(t *testing.T) {
	svc, err := NewService(NewInMemoryStore())
	require.NoError(t, err)

	err = svc.Register(context.Background(), domain.Account{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestService_RegisterUnregister(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(NewInMemoryStore())
	require.NoError(t, err)

	account := testAccount("com.example.carrier", "sub0")
	require.NoError(t, svc.Register(ctx, account))

	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{account}, accounts)

	require.NoError(t, svc.Unregister(ctx, account.Handle))

	err = svc.Unregister(ctx, account.Handle)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestService_EnabledFiltersDisabled(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(NewInMemoryStore())
	require.NoError(t, err)

	enabled := testAccount("a", "on")
	disabled := testAccount("b", "off")
	disabled.Enabled = false
	require.NoError(t, svc.Register(ctx, enabled))
	require.NoError(t, svc.Register(ctx, disabled))

	accounts, err := svc.Enabled(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Account{enabled}, accounts)
}

func TestService_SubscriptionLookup(t *testing.T) {
	svc, err := NewService(NewInMemoryStore())
	require.NoError(t, err)

	known := testAccount("com.example.carrier", "sub0").Handle
	unknown := testAccount("com.example.carrier", "sub1").Handle

	svc.SetSubscription(known, domain.Subscription{ID: 101, Slot: 0})
	lookup := svc.Lookup()

	sub := lookup(known)
	assert.True(t, sub.Valid())
	assert.Equal(t, 0, sub.Slot)

	// The lookup is total: unknown handles resolve to the sentinel.
	sub = lookup(unknown)
	assert.False(t, sub.Valid())
	assert.Equal(t, domain.InvalidSlotIndex, sub.Slot)

	svc.ClearSubscription(known)
	assert.False(t, lookup(known).Valid())
}

func TestService_UnregisterDropsSubscription(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(NewInMemoryStore())
	require.NoError(t, err)

	account := testAccount("com.example.carrier", "sub0")
	require.NoError(t, svc.Register(ctx, account))
	svc.SetSubscription(account.Handle, domain.Subscription{ID: 101, Slot: 0})

	require.NoError(t, svc.Unregister(ctx, account.Handle))
	assert.False(t, svc.Lookup()(account.Handle).Valid())
}
