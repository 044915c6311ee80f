package rag

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when request validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrBackendUnavailable is returned when the vector index or the
	// metadata store cannot serve a query. It is fatal to the query.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrExternalService is returned when the embedding or generation
	// service call fails.
	ErrExternalService = errors.New("external service error")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
