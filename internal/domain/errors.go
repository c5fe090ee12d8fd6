package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Identity errors
	ErrMsgUnauthenticated = "authentication required"

	// Throttling errors
	ErrMsgRateLimited = "rate limit exceeded"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Signature errors
	ErrMsgSignatureInvalid = "invalid request signature"

	// Transport errors
	ErrMsgBackendUnavailable = "backend unavailable"

	// Machine errors
	ErrMsgUnknownMachine = "unknown machine"

	// Session errors
	ErrMsgSpinInFlight      = "a spin is already in progress"
	ErrMsgInsufficientCoins = "insufficient coins"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUnauthenticated    = errors.New(ErrMsgUnauthenticated)
	ErrRateLimited        = errors.New(ErrMsgRateLimited)
	ErrInvalidInput       = errors.New(ErrMsgInvalidInput)
	ErrSignatureInvalid   = errors.New(ErrMsgSignatureInvalid)
	ErrBackendUnavailable = errors.New(ErrMsgBackendUnavailable)
	ErrUnknownMachine     = errors.New(ErrMsgUnknownMachine)
	ErrSpinInFlight       = errors.New(ErrMsgSpinInFlight)
	ErrInsufficientCoins  = errors.New(ErrMsgInsufficientCoins)
)

// Wire error kinds returned to callers of the validation endpoints
const (
	KindUnauthenticated   = "unauthenticated"
	KindResourceExhausted = "resource-exhausted"
	KindInvalidArgument   = "invalid-argument"
	KindPermissionDenied  = "permission-denied"
	KindInternal          = "internal"
)

// ErrorKind classifies err into one of the wire error kinds.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrRateLimited):
		return KindResourceExhausted
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidArgument
	case errors.Is(err, ErrSignatureInvalid):
		return KindPermissionDenied
	default:
		return KindInternal
	}
}

// InvalidInputf wraps ErrInvalidInput with a formatted detail message.
func InvalidInputf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
