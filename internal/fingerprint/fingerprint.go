// Package fingerprint computes content fingerprints for record payloads.
// A fingerprint is a pure function of the payload bytes: the same payload
// always yields the same digest, so an anchored record can be re-verified
// against a fresh copy of the data at any time.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HexLength is the length of a bare fingerprint: 64 hex chars for SHA-256.
const HexLength = sha256.Size * 2

// displayPrefix marks the prefixed presentation form of a digest.
const displayPrefix = "0x"

// Compute returns the lowercase hex SHA-256 digest of payload. It never fails
// and imposes no size limit; payload validation belongs to the caller.
func Compute(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Display returns the 0x-prefixed form used in receipts and UI surfaces.
func Display(digest string) string {
	if strings.HasPrefix(digest, displayPrefix) {
		return digest
	}
	return displayPrefix + digest
}

// Normalize strips the display prefix and lowercases a digest so stored and
// presented forms compare equal.
func Normalize(digest string) string {
	return strings.ToLower(strings.TrimPrefix(digest, displayPrefix))
}

// Matches reports whether payload hashes to digest, accepting either the bare
// or the 0x-prefixed form.
func Matches(payload []byte, digest string) bool {
	return Compute(payload) == Normalize(digest)
}
