// Package clients provides the resilient HTTP client used by downstream
// adapters. Its errors describe transport failures; adapters translate them
// into domain errors.
package clients

import "errors"

var (
	// ErrCircuitOpen means the breaker rejected the request without sending it.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once attempts run out.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	errServerStatus = errors.New("retryable status")
)
