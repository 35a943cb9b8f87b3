// Package domainerrors defines the error taxonomy shared by all core
// operations. Every failure crossing a service boundary carries a Code so the
// transport layer can map it without inspecting messages.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a failure.
type Code string

const (
	// CodeInvalidArgument marks missing or malformed caller input.
	CodeInvalidArgument Code = "invalid_argument"
	// CodeNotFound marks a lookup of an unknown key.
	CodeNotFound Code = "not_found"
	// CodeAlreadyExists marks a write-once violation.
	CodeAlreadyExists Code = "already_exists"
	// CodeInvalidFormat marks a codec decode failure.
	CodeInvalidFormat Code = "invalid_format"
	// CodeInternal marks an invariant violation or backend failure.
	CodeInternal Code = "internal"
)

// Error is a classified error with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New creates a classified error without a cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a classified error keeping the cause reachable via errors.Is.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Is reports whether any error in the chain carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the code from the chain, defaulting untyped errors to
// internal so nothing unclassified leaks to callers as recoverable.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeInvalidFormat:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
