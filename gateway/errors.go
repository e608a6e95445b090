package gateway

import "errors"

var (
	// ErrUnavailable indicates the platform could not be reached at all.
	ErrUnavailable = errors.New("chat platform unavailable")

	// ErrInvalidMaxAttempts is returned when maxAttempts is <= 0
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
