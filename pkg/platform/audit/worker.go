package audit

import (
	"context"
	"log/slog"
)

// Worker drains audit events from a channel and persists them, decoupling
// routing hot paths from sink latency. Append failures are logged and the
// event dropped; audit is best-effort by contract.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "audit append failed",
					"category", event.Category,
					"action", event.Action,
					"error", err)
			}
		}
	}
}
