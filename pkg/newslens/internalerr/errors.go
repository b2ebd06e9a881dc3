package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInsufficientData = errors.New("insufficient data")
	ErrNonConvergence   = errors.New("iteration did not converge")
	ErrStoreUnavailable = errors.New("store unavailable")
)
