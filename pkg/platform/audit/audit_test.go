package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callgate/pkg/requestcontext"
)

func TestPublisher_SetsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	before := time.Now()
	err := pub.Emit(context.Background(), Event{
		Category: CategoryRouting,
		Action:   "select_accounts",
	})
	require.NoError(t, err)
	after := time.Now()

	events := store.Events()
	require.Len(t, events, 1)
	assert.True(t, !events[0].Timestamp.Before(before), "timestamp should be >= before")
	assert.True(t, !events[0].Timestamp.After(after), "timestamp should be <= after")
}

func TestPublisher_UsesRequestScopedTime(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	fixed := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), fixed)

	require.NoError(t, pub.Emit(ctx, Event{Category: CategoryRouting, Action: "classify"}))

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, fixed, events[0].Timestamp)
}

func TestPublisher_PreservesExistingTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	customTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	err := pub.Emit(context.Background(), Event{
		Category:  CategoryRegistry,
		Action:    "register_account",
		Timestamp: customTime,
	})
	require.NoError(t, err)

	events := store.Events()
	require.Len(t, events, 1)
	assert.Equal(t, customTime, events[0].Timestamp)
}

func TestPublisher_MultipleEvents(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	actions := []string{"select_accounts", "classify", "register_account"}
	for _, action := range actions {
		err := pub.Emit(context.Background(), Event{
			Category: CategoryRouting,
			Action:   action,
		})
		require.NoError(t, err)
	}

	events := store.Events()
	require.Len(t, events, 3)
	for i, action := range actions {
		assert.Equal(t, action, events[i].Action)
	}
}

func TestHashAddress(t *testing.T) {
	first := HashAddress("911")
	second := HashAddress("911")
	other := HashAddress("112")

	assert.Equal(t, first, second, "hashing must be deterministic")
	assert.NotEqual(t, first, other)
	assert.NotContains(t, first, "911", "raw address must not leak into the hash")
	assert.Len(t, first, 64)
}

func TestWorker_PersistsFromInbox(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event, 4)
	worker := NewWorker(store, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	inbox <- Event{Category: CategoryRouting, Action: "classify", Decision: "deny"}
	inbox <- Event{Category: CategoryRegistry, Action: "unregister_account"}

	assert.Eventually(t, func() bool {
		return len(store.Events()) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	err := <-done
	assert.ErrorIs(t, err, context.Canceled)

	events := store.Events()
	assert.Equal(t, "classify", events[0].Action)
	assert.Equal(t, "unregister_account", events[1].Action)
}

func TestBuffer_DropsWhenFull(t *testing.T) {
	buffer := NewBuffer(1)

	require.NoError(t, buffer.Append(context.Background(), Event{Action: "first"}))
	err := buffer.Append(context.Background(), Event{Action: "second"})
	assert.ErrorIs(t, err, ErrBufferFull)

	got := <-buffer.Inbox()
	assert.Equal(t, "first", got.Action)
}

func TestBuffer_WorkerDrains(t *testing.T) {
	store := NewInMemoryStore()
	buffer := NewBuffer(8)
	worker := NewWorker(store, buffer.Inbox(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	pub := NewPublisher(buffer)
	require.NoError(t, pub.Emit(ctx, Event{Category: CategoryRouting, Action: "classify"}))

	assert.Eventually(t, func() bool {
		return len(store.Events()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Event)
	worker := NewWorker(store, inbox, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := worker.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.Events())
}
