package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique constraint was violated.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates payload validation failure.
	ErrValidation = errors.New("validation failed")
	// ErrUnavailable indicates an upstream fetch failed and no partial result may be shown.
	ErrUnavailable = errors.New("data unavailable")
)
