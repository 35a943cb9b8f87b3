package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var droppedEvents = promauto.NewCounter(prometheus.CounterOpts{
	Name: "healthanchor_audit_events_dropped_total",
	Help: "Audit events dropped because the publisher buffer was full",
})

// Publisher accepts audit events on the request path and hands them to the
// background worker over a buffered channel. Emit never blocks: when the
// buffer is full the event is dropped and counted, because an audit backlog
// must not stall anchoring.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher constructs a publisher with the given buffer size.
func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		inbox:  make(chan Event, buffer),
		logger: logger,
	}
}

// Emit queues an event for persistence. The timestamp is defaulted when the
// caller left it zero.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case p.inbox <- event:
	default:
		droppedEvents.Inc()
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"kind", event.Kind,
			"transaction_id", event.TransactionID,
		)
	}
}

// Events exposes the inbox for the worker.
func (p *Publisher) Events() <-chan Event {
	return p.inbox
}
