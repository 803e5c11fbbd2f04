// Package common defines shared constants, sentinel errors, and small random
// helpers used across the zkpauth client and server. Callers should use
// errors.Is to match the error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Protocol errors.
	ErrMalformedInput     = errors.New("malformed input")
	ErrUnknownIdentity    = errors.New("unknown identity")
	ErrNoPendingChallenge = errors.New("no pending challenge")
	ErrStorageFailure     = errors.New("storage failure")
	ErrProofMismatch      = errors.New("proof mismatch")
)
