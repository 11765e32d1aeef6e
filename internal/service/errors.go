package service

import "errors"

// Common service errors - sentinel errors used across service
// implementations. Callers check them with errors.Is() and the web layer
// maps them to form errors or HTTP status codes.
var (
	// ErrInvalidCredentials indicates a login attempt with an unknown email
	// or a wrong password. The two cases are deliberately indistinguishable
	// so the login form never reveals whether an email is registered.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSlugExhausted indicates that task creation kept losing the slug
	// uniqueness race after several regeneration attempts. The condition is
	// transient; the web layer asks the user to retry.
	ErrSlugExhausted = errors.New("could not allocate a unique slug")
)
