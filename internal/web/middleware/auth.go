package middleware

import (
	"net/http"
	"net/url"

	"github.com/RakadSK/trabajoprogwebII/internal/platform/logger"
	"github.com/RakadSK/trabajoprogwebII/internal/service/auth"
	"github.com/RakadSK/trabajoprogwebII/internal/web/shared"
)

// AuthMiddleware gates routes behind a valid session cookie.
type AuthMiddleware struct {
	sessions auth.SessionManager
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(sessions auth.SessionManager) *AuthMiddleware {
	return &AuthMiddleware{
		sessions: sessions,
	}
}

// RequireAuth validates the session cookie and adds the user ID to the
// request context. Unauthenticated browsers are redirected to the login
// form with the original path in the next parameter.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.sessions.Current(r.Context(), r)
		if err != nil {
			log := logger.FromContext(r.Context())
			log.Debug("unauthenticated access to protected route",
				"path", r.URL.Path,
				"reason", err.Error())

			loginURL := "/login?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, loginURL, http.StatusSeeOther)
			return
		}

		ctx := shared.WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
