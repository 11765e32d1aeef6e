// Package auth provides password hashing, signed cookie sessions, and
// CSRF protection for the web layer. Session state lives entirely in the
// client's cookie; there is no server-side session table.
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// SessionManager defines operations for establishing and tearing down
// browser sessions.
type SessionManager interface {
	// Establish signs a session token for the user and sets it as an
	// HttpOnly cookie on the response.
	Establish(ctx context.Context, w http.ResponseWriter, userID uuid.UUID) error

	// Current validates the session cookie on the request and returns the
	// authenticated user's ID. Returns ErrMissingToken if no cookie is
	// present, ErrExpiredToken or ErrInvalidToken if validation fails.
	Current(ctx context.Context, r *http.Request) (uuid.UUID, error)

	// Clear expires the session cookie on the response.
	Clear(w http.ResponseWriter)
}

// Claims represents the validated contents of a session token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID

	// IssuedAt and ExpiresAt bound the session's validity window.
	IssuedAt  time.Time
	ExpiresAt time.Time

	// ID is a unique token identifier.
	ID string
}
