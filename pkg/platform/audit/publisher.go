package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"callgate/pkg/requestcontext"
)

// Publisher captures structured audit events. It uses the storage layer for
// persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

// Emit appends the event, stamping the request-scoped time if the caller
// did not set one.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	return p.store.Append(ctx, event)
}

// HashAddress produces the persistable form of a dialed address. Audit
// records never carry the raw address.
func HashAddress(address string) string {
	sum := sha256.Sum256([]byte(address))
	return hex.EncodeToString(sum[:])
}
