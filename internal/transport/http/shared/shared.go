// Package shared centralizes JSON response writing so every handler emits the
// same envelopes and the domain error taxonomy maps to HTTP in one place.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	"healthanchor/pkg/domainerrors"
)

// WriteJSON serializes v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope. Untyped
// errors surface as internal without leaking their message.
func WriteError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	var de *domainerrors.Error
	if code != domainerrors.CodeInternal && errors.As(err, &de) {
		body["message"] = de.Message
	}
	WriteJSON(w, domainerrors.ToHTTPStatus(code), body)
}
