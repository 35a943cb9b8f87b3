// Package audit records who touched which record and when. Events are
// append-only and flow through a buffered publisher into a background worker,
// so emitting from the request path never blocks on the sink.
package audit

import (
	"context"
	"time"
)

// Kind labels the action an event describes.
type Kind string

const (
	KindRecordAnchored Kind = "record_anchored"
	KindRecordViewed   Kind = "record_viewed"
	KindStreakAdvanced Kind = "streak_advanced"
)

// Event is one audit trail entry.
type Event struct {
	Kind          Kind      `json:"kind"`
	ActorID       string    `json:"actorId,omitempty"`
	PatientID     string    `json:"patientId,omitempty"`
	TransactionID string    `json:"transactionId,omitempty"`
	RequestID     string    `json:"requestId,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// Sink persists audit events. Implementations: in-memory store, Kafka producer.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
