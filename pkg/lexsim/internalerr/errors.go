package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidComposition = errors.New("invalid composition")
	ErrInvalidConfig      = errors.New("invalid configuration")
)
