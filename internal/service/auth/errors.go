package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the session token format is invalid or the
	// signature doesn't match.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken indicates the session token has expired.
	ErrExpiredToken = errors.New("session token has expired")

	// ErrMissingToken indicates a session token was expected but not provided.
	ErrMissingToken = errors.New("session token is missing")

	// ErrInvalidCSRFToken indicates a CSRF token pair was missing, forged,
	// or did not match.
	ErrInvalidCSRFToken = errors.New("invalid CSRF token")
)
