package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"healthanchor/internal/anchor"
	"healthanchor/pkg/platform/sentinel"
)

// Store persists anchor records in PostgreSQL. It is pure I/O: write-once
// enforcement rides on the primary key, and the service layer owns retries
// and error translation.
type Store struct {
	db *sql.DB
}

// New constructs a PostgreSQL-backed anchor store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the anchors table. Single-table schema, so a migration
// framework would be overkill here.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS anchors (
			transaction_id     TEXT PRIMARY KEY,
			patient_id         TEXT NOT NULL,
			record_fingerprint TEXT NOT NULL,
			issuer_id          TEXT NOT NULL,
			issued_at          BIGINT NOT NULL,
			wallet_address     TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("migrate anchors: %w", err)
	}
	return nil
}

// Put commits a record under its transaction id. ON CONFLICT DO NOTHING keeps
// the insert atomic; a zero rows-affected result means the id was taken and
// the stored record stays as written first.
func (s *Store) Put(ctx context.Context, record anchor.Record) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO anchors (transaction_id, patient_id, record_fingerprint, issuer_id, issued_at, wallet_address)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (transaction_id) DO NOTHING
	`, record.TransactionID, record.PatientID, record.RecordFingerprint, record.IssuerID, record.IssuedAt, record.WalletAddress)
	if err != nil {
		return fmt.Errorf("put anchor: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("put anchor rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("anchor %s already committed: %w", record.TransactionID, sentinel.ErrConflict)
	}
	return nil
}

// Get returns the record for the given transaction id.
func (s *Store) Get(ctx context.Context, transactionID string) (anchor.Record, error) {
	var record anchor.Record
	err := s.db.QueryRowContext(ctx, `
		SELECT transaction_id, patient_id, record_fingerprint, issuer_id, issued_at, wallet_address
		FROM anchors
		WHERE transaction_id = $1
	`, transactionID).Scan(
		&record.TransactionID,
		&record.PatientID,
		&record.RecordFingerprint,
		&record.IssuerID,
		&record.IssuedAt,
		&record.WalletAddress,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return anchor.Record{}, fmt.Errorf("anchor %s: %w", transactionID, sentinel.ErrNotFound)
		}
		return anchor.Record{}, fmt.Errorf("get anchor: %w", err)
	}
	return record, nil
}

// GenerateTransactionID produces a fresh transaction identifier.
func (s *Store) GenerateTransactionID() string {
	return anchor.NewTransactionID(time.Now())
}
