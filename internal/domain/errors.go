package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain errors so transports can resolve them to distinct statuses.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
)

// Error is a classified domain error.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a domain error of the given kind.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of the first domain error in err's chain.
// The second return value is false for unclassified errors.
func KindOf(err error) (ErrorKind, bool) {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Kind, true
	}
	return "", false
}

// Domain-specific errors for business logic validation.
var (
	// Task errors
	ErrTaskNotFound = NewError(KindNotFound, "task not found")
	ErrTaskExists   = NewError(KindConflict, "task already exists")

	// User errors
	ErrUserNotFound    = NewError(KindNotFound, "user not found")
	ErrUserInactive    = NewError(KindUnauthorized, "user is inactive")
	ErrUnauthenticated = NewError(KindUnauthorized, "authentication required")
	ErrInvalidToken    = NewError(KindUnauthorized, "invalid authentication token")

	// Validation errors
	ErrMissingFields      = NewError(KindValidation, "missing required fields: title, stage, date, priority")
	ErrMissingTaskID      = NewError(KindValidation, "task id is required")
	ErrInvalidStage       = NewError(KindValidation, "invalid task stage")
	ErrInvalidPriority    = NewError(KindValidation, "invalid task priority")
	ErrInvalidDate        = NewError(KindValidation, "invalid task date")
	ErrInvalidTrashFilter = NewError(KindValidation, "invalid isTrashed filter")
	ErrInvalidAction      = NewError(KindValidation, "invalid actionType")
	ErrInvalidJSON        = NewError(KindValidation, "invalid request body")
)
