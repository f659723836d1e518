package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and handlers.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("not authorized")
	ErrDuplicateCompletion = errors.New("habit already completed today")
	ErrValidation          = errors.New("validation failed")
	ErrInternal            = errors.New("internal error")
)

// ValidationError names the offending field. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
