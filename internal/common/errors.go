// Package common defines shared constants and sentinel errors used across
// the trivia quiz server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Credential errors. Unknown email and wrong password both map here.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors (invalid signature/issuer/algorithm, or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// The token subject no longer exists.
	ErrUnknownIdentity = errors.New("unknown identity")

	// Authorization errors.
	ErrPermissionDenied = errors.New("permission denied")

	// User-specific errors.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// IsAuthenticationError reports whether err belongs to the group of failures
// that surface as a single "unauthorized" outcome at the boundary.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrUnknownIdentity)
}
