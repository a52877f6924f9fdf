// Package apierror provides the error taxonomy shared by services and the
// standardized response envelope returned to clients. All errors surfaced over
// HTTP go through this package so internal details (stack traces, SQL errors)
// never leak.
package apierror

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error so handlers can map it to an HTTP status
// without string matching.
type Kind int

const (
	// KindInternal is the fallback for unclassified failures.
	KindInternal Kind = iota
	// KindNotFound: the referenced entity is absent or not owned by the
	// caller. The two cases are deliberately indistinguishable.
	KindNotFound
	// KindInvalidOperation: a state precondition (lifecycle status, quantity
	// bound) was violated. Carries a human-readable reason.
	KindInvalidOperation
	// KindConflict: a uniqueness constraint was violated (duplicate product
	// code, duplicate email).
	KindConflict
)

// Error is a classified domain error.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(msg string) *Error         { return &Error{Kind: KindNotFound, Message: msg} }
func InvalidOperation(msg string) *Error { return &Error{Kind: KindInvalidOperation, Message: msg} }
func Conflict(msg string) *Error         { return &Error{Kind: KindConflict, Message: msg} }

// KindOf extracts the Kind from an error chain, KindInternal when unclassified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidOperation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation failed", Fields: fields}
}
