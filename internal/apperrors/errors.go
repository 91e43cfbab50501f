package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthenticated indicates that no identity is attached to the request.
var ErrUnauthenticated = errors.New("no authenticated identity")

// ErrGuardViolation indicates that a workflow transition was refused, either
// because of the caller's role or because of the entity's current status.
var ErrGuardViolation = errors.New("guard violation")

// ErrForbidden is a guard violation caused by the caller (wrong role or not the requester).
var ErrForbidden = fmt.Errorf("%w: forbidden", ErrGuardViolation)

// ErrInvalidState is a guard violation caused by the entity's current status.
var ErrInvalidState = fmt.Errorf("%w: invalid state", ErrGuardViolation)

// ErrPersistence indicates that the storage collaborator failed.
var ErrPersistence = errors.New("persistence failure")

// AppError carries a message alongside the underlying error.
type AppError struct {
	Message string
	Err     error
}

// NewPersistenceError wraps a storage failure so that it matches ErrPersistence
// as well as the original driver error.
func NewPersistenceError(message string, err error) *AppError {
	if err == nil {
		return &AppError{Message: message, Err: ErrPersistence}
	}
	return &AppError{Message: message, Err: fmt.Errorf("%w: %w", ErrPersistence, err)}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}
