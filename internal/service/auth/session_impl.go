package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/RakadSK/trabajoprogwebII/internal/config"
	"github.com/RakadSK/trabajoprogwebII/internal/platform/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// cookieSessionManager implements SessionManager with an HS256-signed JWT
// carried in an HttpOnly cookie.
type cookieSessionManager struct {
	signingKey      []byte
	sessionLifetime time.Duration
	timeFunc        func() time.Time // Injectable for testing
	clockSkew       time.Duration    // Allowed time difference to handle clock drift
}

// sessionClaims defines the structure of the JWT claims we use.
type sessionClaims struct {
	UserID uuid.UUID `json:"uid"`
	jwt.RegisteredClaims
}

// Ensure cookieSessionManager implements SessionManager interface
var _ SessionManager = (*cookieSessionManager)(nil)

// NewSessionManager creates a cookie session manager using HMAC-SHA signing.
func NewSessionManager(cfg config.AuthConfig) (SessionManager, error) {
	// Validate that the secret meets minimum length requirements
	if len(cfg.SecretKey) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters")
	}

	return &cookieSessionManager{
		signingKey:      []byte(cfg.SecretKey),
		sessionLifetime: time.Duration(cfg.SessionLifetimeMinutes) * time.Minute,
		timeFunc:        time.Now,
		clockSkew:       2 * time.Minute,
	}, nil
}

// Establish signs a session token bound to userID and sets the cookie.
func (m *cookieSessionManager) Establish(ctx context.Context, w http.ResponseWriter, userID uuid.UUID) error {
	log := logger.FromContext(ctx)
	now := m.timeFunc()

	claims := sessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.sessionLifetime)),
			ID:        uuid.New().String(), // Unique token ID
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.signingKey)
	if err != nil {
		log.Error("failed to sign session token",
			"error", err,
			"user_id", userID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    signedToken,
		Path:     "/",
		Expires:  now.Add(m.sessionLifetime),
		MaxAge:   int(m.sessionLifetime / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Current validates the session cookie and returns the user ID it is bound to.
func (m *cookieSessionManager) Current(ctx context.Context, r *http.Request) (uuid.UUID, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return uuid.Nil, ErrMissingToken
	}

	claims, err := m.validateToken(ctx, cookie.Value)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.UserID, nil
}

// Clear expires the session cookie.
func (m *cookieSessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// validateToken parses and validates a signed session token.
func (m *cookieSessionManager) validateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)
	now := m.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(m.clockSkew), // Allow for clock skew when validating time claims
		jwt.WithTimeFunc(func() time.Time {
			return now // Use our injected time function for validation
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&sessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			// Validate the signing method is what we expect
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("session validation failed: token expired", "error", err)
			return nil, ErrExpiredToken
		}
		log.Debug("session validation failed", "error", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		log.Debug("session validation failed: invalid claims")
		return nil, ErrInvalidToken
	}
	if claims.UserID == uuid.Nil {
		log.Debug("session validation failed: missing user ID")
		return nil, ErrInvalidToken
	}

	out := &Claims{
		UserID: claims.UserID,
		ID:     claims.RegisteredClaims.ID,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
