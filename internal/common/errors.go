// Package common defines shared constants and sentinel errors used across
// finkeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Business-rule errors.
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// Validation errors. Wrap with a human-readable reason where possible.
	ErrValidation = errors.New("validation error")

	// Authentication failure. Deliberately generic so callers cannot tell
	// a missing account from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Storage errors (user-store file or session database).
	ErrStorage = errors.New("storage error")

	// Crypto primitive failure (entropy source unavailable, bad key).
	// Fatal to the operation, not to the process.
	ErrCryptoUnavailable = errors.New("cryptographic provider unavailable")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
