// Package apperr defines the domain error kinds shared by services and
// controllers. Every kind carries a user-facing message (Indonesian, ready
// for direct display) next to the machine-readable kind string.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindForbidden          Kind = "forbidden"
	KindAlreadyActive      Kind = "already_active"
	KindAlreadyCompleted   Kind = "already_completed"
	KindAlreadySubmitted   Kind = "already_submitted"
	KindCapacityExceeded   Kind = "capacity_exceeded"
	KindExamNotRequired    Kind = "exam_not_required"
	KindJuzMismatch        Kind = "juz_mismatch"
	KindMaxAttemptsReached Kind = "max_attempts_reached"
	KindValidation         Kind = "validation_error"
	KindStore              Kind = "store_error"
)

// Error is a domain error. Message is safe to render to the caller; Err, if
// set, is the underlying cause and is only logged. Details optionally carries
// structured state for the caller, e.g. current occupancy on a capacity
// rejection or the prior attempt on an idempotency guard.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	Details interface{}
}

// WithDetails attaches structured caller-facing state to the error.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// DetailsOf returns the structured details of err, if any.
func DetailsOf(err error) interface{} {
	var e *Error
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Store wraps a persistence failure. The underlying error is never shown to
// the caller.
func Store(err error) *Error {
	return &Error{Kind: KindStore, Message: "Terjadi kesalahan pada server, silakan coba lagi", Err: err}
}

// KindOf returns the kind of err, or KindStore when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// MessageOf returns the displayable message of err, falling back to a generic
// one for unexpected errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Terjadi kesalahan pada server, silakan coba lagi"
}

// HTTPStatus maps a domain error to the transport status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindAlreadyActive, KindAlreadyCompleted, KindAlreadySubmitted,
		KindCapacityExceeded, KindExamNotRequired, KindJuzMismatch,
		KindMaxAttemptsReached, KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
