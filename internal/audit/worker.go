package audit

import (
	"context"
	"log/slog"
)

// Worker drains the publisher's inbox into a sink. It keeps background
// processing testable without wiring a broker: tests feed the channel and
// assert on an in-memory sink.
type Worker struct {
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run consumes events until the context is cancelled. Sink failures are
// logged and skipped rather than crashing the worker; the audit trail is
// best-effort by design while the anchor store stays authoritative.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"kind", event.Kind,
					"error", err,
				)
			}
		}
	}
}
