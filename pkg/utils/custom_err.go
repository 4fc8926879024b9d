package utils

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDatabaseError       = errors.New("database error")
	ErrNotFound            = errors.New("record not found")
	ErrTourNotFound        = errors.New("tour not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrUpstreamUnavailable = errors.New("completion service unavailable")
	ErrMalformedCompletion = errors.New("malformed completion")
	ErrAllocationExhausted = errors.New("tour id allocation exhausted")
	ErrIDConflict          = errors.New("tour id conflict")
	ErrPersistenceFailure  = errors.New("persistence failure")
)

// PersistenceError marks which write phase of a tour creation failed, so a
// parent row left without children can be diagnosed.
type PersistenceError struct {
	Phase string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in phase %q: %v", e.Phase, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistenceFailure }

func NewPersistenceError(phase string, err error) error {
	return &PersistenceError{Phase: phase, Err: err}
}
