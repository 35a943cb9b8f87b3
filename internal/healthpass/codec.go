// Package healthpass encodes portable identity envelopes into compact tokens
// that survive a round trip through a QR code. The token is plain JSON: the
// scanning side is often a browser, and JSON keeps it inspectable.
package healthpass

import (
	"encoding/json"

	"healthanchor/pkg/domainerrors"
)

// TypePatientAccess marks the envelope variant that carries only a patient
// identity, used when a patient shares access without a specific record.
const TypePatientAccess = "patient_access"

// Envelope is the payload carried inside a health-pass token. An absent Type
// means the full receipt variant; optional fields are omitted from the
// serialized form rather than emitted as empty strings.
type Envelope struct {
	TransactionID     string `json:"transactionId,omitempty"`
	PatientID         string `json:"patientId"`
	RecordFingerprint string `json:"recordFingerprint,omitempty"`
	Type              string `json:"type,omitempty"`
}

// NewReceiptEnvelope builds the full receipt variant tying a patient to an
// anchored record.
func NewReceiptEnvelope(transactionID, patientID, recordFingerprint string) Envelope {
	return Envelope{
		TransactionID:     transactionID,
		PatientID:         patientID,
		RecordFingerprint: recordFingerprint,
	}
}

// NewPatientAccessEnvelope builds the patient-access variant.
func NewPatientAccessEnvelope(patientID string) Envelope {
	return Envelope{
		PatientID: patientID,
		Type:      TypePatientAccess,
	}
}

// IsPatientAccess reports whether the envelope is the patient-access variant.
// Any other Type value, including absence, is treated as a full receipt.
func (e Envelope) IsPatientAccess() bool {
	return e.Type == TypePatientAccess
}

// Encode serializes the envelope into its token form. Field order is fixed by
// the struct definition, so the same envelope always yields the same token.
func Encode(envelope Envelope) (string, error) {
	if envelope.PatientID == "" {
		return "", domainerrors.New(domainerrors.CodeInvalidArgument, "patientId is required")
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return "", domainerrors.Wrap(domainerrors.CodeInternal, "envelope serialization failed", err)
	}
	return string(raw), nil
}

// Decode parses a token back into the envelope that produced it. Unknown
// fields are ignored so newer tokens stay readable by older readers.
func Decode(token string) (Envelope, error) {
	var envelope Envelope
	if err := json.Unmarshal([]byte(token), &envelope); err != nil {
		return Envelope{}, domainerrors.Wrap(domainerrors.CodeInvalidFormat, "token is not a valid envelope", err)
	}
	if envelope.PatientID == "" {
		return Envelope{}, domainerrors.New(domainerrors.CodeInvalidFormat, "token is missing patientId")
	}
	return envelope, nil
}
