package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is the root of every validation failure. The
	// entity-specific errors (ErrTaskTextEmpty, ErrTaskPriorityInvalid,
	// ErrInvalidPriority) derive from it with %w.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")
)
