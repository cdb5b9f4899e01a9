package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("unavailable")
	ErrStorage      = errors.New("storage error")
)

// Storage conditions. Both satisfy errors.Is(err, ErrStorage).
var (
	ErrUninitialized = fmt.Errorf("%w: club state is not initialized", ErrStorage)
	ErrCorrupted     = fmt.Errorf("%w: club state is corrupted", ErrStorage)
)

// Conflict conditions. Both satisfy errors.Is(err, ErrConflict).
var (
	ErrAlreadyInitialized = fmt.Errorf("%w: club state is already initialized", ErrConflict)
	ErrOverflow           = fmt.Errorf("%w: counter overflow", ErrConflict)
)

// ValidationError provides programmatic access to field-level validation failures.
// Use errors.Is(err, ErrValidation) for simple checks, or errors.As(err, &verr) to
// access verr.Fields for per-field error details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	sort.Strings(parts)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AuthorizationError reports that a command's predicate rejected the caller.
// Reason is the human-readable message surfaced to the caller verbatim.
type AuthorizationError struct {
	Command string
	Reason  string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrUnauthorized.Error(), e.Command, e.Reason)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrUnauthorized
}
