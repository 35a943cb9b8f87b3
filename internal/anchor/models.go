// Package anchor defines the append-only record anchoring domain: committed
// fingerprints bound to transaction identifiers plus their provenance.
package anchor

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record binds one committed medical-record fingerprint to its provenance.
// Once written it is immutable: the store rejects rewrites of the same
// transaction id and hands out copies only.
type Record struct {
	TransactionID     string
	PatientID         string
	RecordFingerprint string
	IssuerID          string
	IssuedAt          int64 // milliseconds since epoch
	WalletAddress     string
}

// Receipt is what the anchoring workflow returns to the caller after a
// successful commit.
type Receipt struct {
	TransactionID     string
	RecordFingerprint string
	IssuedAt          int64
	WalletAddress     string
}

const txIDPrefix = "tx_"

// NewTransactionID produces an identifier unique within a store lifetime.
// Uniqueness strategy: unix-millisecond timestamp bucket plus 12 hex chars
// (48 bits) of UUIDv4 randomness. A collision requires two generations in the
// same millisecond drawing the same 48 random bits; the store's put-once
// check plus the workflow's single regeneration retry covers the residual
// probability.
func NewTransactionID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return fmt.Sprintf("%s%d_%s", txIDPrefix, now.UnixMilli(), suffix)
}
