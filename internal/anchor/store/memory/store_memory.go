package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"healthanchor/internal/anchor"
	"healthanchor/pkg/platform/sentinel"
)

// Store keeps anchor records in memory for tests and single-process
// deployments. Records are append-only for the lifetime of the process:
// writes are put-once per transaction id and nothing is ever deleted.
type Store struct {
	mu      sync.RWMutex
	records map[string]anchor.Record
}

// New constructs an empty in-memory anchor store.
func New() *Store {
	return &Store{records: make(map[string]anchor.Record)}
}

// Put commits a record under its transaction id. The check-and-insert runs
// under the write lock, so two concurrent puts for the same id cannot both
// succeed.
func (s *Store) Put(_ context.Context, record anchor.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[record.TransactionID]; ok {
		return fmt.Errorf("anchor %s already committed: %w", record.TransactionID, sentinel.ErrConflict)
	}
	s.records[record.TransactionID] = record
	return nil
}

// Get returns a copy of the record for the given transaction id.
func (s *Store) Get(_ context.Context, transactionID string) (anchor.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[transactionID]
	if !ok {
		return anchor.Record{}, fmt.Errorf("anchor %s: %w", transactionID, sentinel.ErrNotFound)
	}
	return record, nil
}

// GenerateTransactionID produces a fresh transaction identifier.
func (s *Store) GenerateTransactionID() string {
	return anchor.NewTransactionID(time.Now())
}

// Len reports the number of committed records, for tests and health output.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
