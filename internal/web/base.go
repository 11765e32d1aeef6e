package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
	"github.com/RakadSK/trabajoprogwebII/internal/platform/logger"
	"github.com/RakadSK/trabajoprogwebII/internal/service"
	"github.com/RakadSK/trabajoprogwebII/internal/service/auth"
	"github.com/RakadSK/trabajoprogwebII/internal/web/shared"
)

// base bundles the dependencies every handler needs: rendering, session
// inspection for the nav bar, and CSRF protection.
type base struct {
	renderer *Renderer
	sessions auth.SessionManager
	users    service.UserService
	csrf     *auth.CSRFProtector
	logger   *slog.Logger
}

// currentUser resolves the signed-in user for display purposes.
// Returns nil when the request carries no valid session; failures to load
// the user are logged but treated as signed-out rather than surfaced.
func (b *base) currentUser(r *http.Request) *domain.User {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		var err error
		userID, err = b.sessions.Current(r.Context(), r)
		if err != nil {
			return nil
		}
	}

	user, err := b.users.GetUser(r.Context(), userID)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Warn("session references unknown user",
			"user_id", userID,
			"error", err.Error())
		return nil
	}
	return user
}

// ensureCSRF returns the request's CSRF token, minting one and setting its
// cookie if the request does not carry a valid token yet.
func (b *base) ensureCSRF(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(auth.CSRFCookieName); err == nil {
		if b.csrf.Verify(cookie.Value, cookie.Value) == nil {
			return cookie.Value
		}
	}

	token, err := b.csrf.Issue()
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error("failed to issue CSRF token", "error", err.Error())
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CSRFCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// verifyCSRF checks the double-submitted token pair on a POST request.
func (b *base) verifyCSRF(r *http.Request) error {
	cookie, err := r.Cookie(auth.CSRFCookieName)
	if err != nil {
		return auth.ErrInvalidCSRFToken
	}
	return b.csrf.Verify(cookie.Value, r.PostFormValue(auth.CSRFFieldName))
}

// renderNotFound writes the 404 page.
func (b *base) renderNotFound(w http.ResponseWriter, r *http.Request) {
	b.renderer.Render(w, http.StatusNotFound, "404.html", &templateData{
		Title: "Not found",
		User:  b.currentUser(r),
	})
}

// renderServerError writes the 500 page, logging the cause.
func (b *base) renderServerError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Error("request failed",
		"path", r.URL.Path,
		"method", r.Method,
		"error", err.Error())

	b.renderer.Render(w, http.StatusInternalServerError, "500.html", &templateData{
		Title: "Server error",
		User:  b.currentUser(r),
	})
}

// safeNext validates a post-login redirect target. Only relative paths are
// accepted so the login flow cannot be abused as an open redirect.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	parsed, err := url.Parse(next)
	if err != nil || parsed.Scheme != "" || parsed.Host != "" {
		return ""
	}
	return next
}
