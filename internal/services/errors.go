package services

import "errors"

// Sentinel errors the handlers translate into HTTP statuses. Services wrap
// them with context via fmt.Errorf("...: %w", Err...).
var (
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
)
