package audit

import (
	"context"
	"errors"
)

// ErrBufferFull reports a dropped event; audit never blocks the caller.
var ErrBufferFull = errors.New("audit buffer full")

// Buffer is a Store that enqueues events for a Worker to drain, keeping slow
// sinks off the request path.
type Buffer struct {
	inbox chan Event
}

// NewBuffer creates a buffer holding up to capacity pending events.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{inbox: make(chan Event, capacity)}
}

// Append enqueues the event, dropping it when the buffer is full.
func (b *Buffer) Append(_ context.Context, event Event) error {
	select {
	case b.inbox <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

// Inbox is the channel a Worker drains.
func (b *Buffer) Inbox() <-chan Event {
	return b.inbox
}
