// Package domain contains the responder's error vocabulary and compiled
// limits. No external dependencies allowed - this is the innermost ring.
package domain

import "errors"

// Sentinel errors for domain error conditions.
// Use errors.Is() for matching - never compare error strings.
var (
	// Request errors
	ErrNotFound         = errors.New("route not found")
	ErrMethodNotAllowed = errors.New("method not allowed")

	// Operational errors
	ErrUnavailable = errors.New("service temporarily unavailable")

	// Configuration errors (startup-time only; these are fatal)
	ErrConfigRequired = errors.New("required configuration key missing")
	ErrInvalidPort    = errors.New("port out of range")
)

// IsClientError returns true if the error represents a client-side issue
// that will not succeed on retry without client-side changes.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrMethodNotAllowed)
}

// IsNotFound returns true if the error represents a missing route.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConfigError returns true if the error is a startup configuration failure.
// Config errors are always fatal: the process must exit non-zero.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigRequired) || errors.Is(err, ErrInvalidPort)
}
