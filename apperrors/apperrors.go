// Package apperrors defines the error taxonomy shared by the lifecycle core
// and the HTTP handlers.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error
type Kind int

// Error kinds
const (
	KindInternal Kind = iota
	KindValidation
	KindBadRequest
	KindNotFound
	KindForbidden
	KindConflict
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION_ERROR"
	case KindBadRequest:
		return "BAD_REQUEST"
	case KindNotFound:
		return "NOT_FOUND"
	case KindForbidden:
		return "FORBIDDEN"
	case KindConflict:
		return "CONFLICT"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "INTERNAL_ERROR"
	}
}

// Error is an error with a kind, a client-facing message and optional field errors
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the machine readable code sent to clients
func (e *Error) Code() string {
	return e.Kind.String()
}

// Validation returns a validation error carrying per-field messages
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// BadRequest returns an error for a request that cannot be honoured in the current state
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// NotFound returns an error for a missing entity
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Forbidden returns an error for a caller without the right role or ownership
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Conflict returns an error for a duplicate or an illegal transition
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Unauthorized returns an error for missing or invalid credentials
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Internal wraps an unexpected error. The cause is never sent to clients.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, KindInternal when err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is reports whether err is an *Error of kind k
func Is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// HTTPStatus maps err to a status code. Conflicts are reported as 400.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindBadRequest, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
