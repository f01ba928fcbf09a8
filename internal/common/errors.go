// Package common defines shared constants and sentinel errors used across
// the platform's layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Request validation.
	ErrInvalidInput     = errors.New("invalid input")
	ErrPayloadTooLarge  = errors.New("attachment exceeds tier limit")
	ErrInvalidSignature = errors.New("invalid wallet signature")
	ErrChallengeExpired = errors.New("authentication challenge expired")
	ErrInvalidToken     = errors.New("invalid token")

	// Ledger.
	ErrInsufficientCredit = errors.New("insufficient credit")

	// Object storage. ErrStorageUnavailable is retryable;
	// ErrDecryptionFailed is fatal for the affected object.
	ErrStorageUnavailable = errors.New("storage backend unavailable")
	ErrDecryptionFailed   = errors.New("ciphertext authentication failed")

	// Records and sessions.
	ErrNotFound = errors.New("not found")

	// Idempotent no-op outcome, not a failure.
	ErrAlreadyProcessed = errors.New("already processed")

	// Fatal at startup: missing key material or catalog entry.
	ErrConfiguration = errors.New("configuration error")
)
