package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherAndWorker(t *testing.T) {
	t.Run("events flow from Emit through the worker into the sink", func(t *testing.T) {
		publisher := NewPublisher(8, discardLogger())
		sink := NewInMemoryStore()
		worker := NewWorker(sink, publisher.Events(), discardLogger())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			_ = worker.Run(ctx)
			close(done)
		}()

		publisher.Emit(ctx, Event{
			Kind:          KindRecordAnchored,
			ActorID:       "doctor-1",
			PatientID:     "P1",
			TransactionID: "tx_1",
		})

		require.Eventually(t, func() bool {
			events, err := sink.List(context.Background())
			return err == nil && len(events) == 1
		}, time.Second, 5*time.Millisecond)

		events, err := sink.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, KindRecordAnchored, events[0].Kind)
		assert.Equal(t, "tx_1", events[0].TransactionID)
		assert.False(t, events[0].Timestamp.IsZero(), "timestamp defaulted on emit")

		cancel()
		<-done
	})

	t.Run("full buffer drops instead of blocking", func(t *testing.T) {
		publisher := NewPublisher(1, discardLogger())
		ctx := context.Background()

		// No worker draining: second emit must return immediately.
		publisher.Emit(ctx, Event{Kind: KindRecordViewed})
		finished := make(chan struct{})
		go func() {
			publisher.Emit(ctx, Event{Kind: KindRecordViewed})
			close(finished)
		}()

		select {
		case <-finished:
		case <-time.After(time.Second):
			t.Fatal("Emit blocked on a full buffer")
		}
	})
}
