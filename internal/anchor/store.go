package anchor

import "context"

// Store is the authoritative mapping from transaction id to anchor record.
// It is interface-driven so the in-memory implementation can be swapped for
// a real append-only ledger client without touching fingerprinting, codec,
// or streak logic.
//
// Error contract:
// - Put returns sentinel.ErrConflict (wrapped) when the transaction id is
//   already present; first write wins and the stored record is unchanged.
// - Get returns sentinel.ErrNotFound (wrapped) for unknown transaction ids.
type Store interface {
	Put(ctx context.Context, record Record) error
	Get(ctx context.Context, transactionID string) (Record, error)
	GenerateTransactionID() string
}
