package web

import (
	"net/http"
	"net/url"
	"strings"
)

// flashCookieName is the one-shot cookie carrying a flash message across
// a redirect.
const flashCookieName = "flash"

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind    string // "success" or "error"
	Message string
}

// setFlash stores a flash message in a cookie that the next page render
// consumes.
func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie. Returns nil if no flash
// message is pending or the cookie is malformed.
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// Clear regardless of whether the value parses.
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	decoded, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	kind, message, found := strings.Cut(decoded, "|")
	if !found || message == "" {
		return nil
	}

	return &Flash{Kind: kind, Message: message}
}
