package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown event or transaction type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotConfigured indicates a required credential or endpoint is missing.
	// The publish path reports this as "Missing secrets".
	ErrNotConfigured = errors.New("not configured")

	// ErrEmptyCompletion indicates the text-generation service returned no usable text.
	ErrEmptyCompletion = errors.New("empty completion")
)
