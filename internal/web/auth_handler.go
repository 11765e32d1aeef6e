package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/RakadSK/trabajoprogwebII/internal/service"
	"github.com/RakadSK/trabajoprogwebII/internal/service/auth"
	"github.com/RakadSK/trabajoprogwebII/internal/store"
	"github.com/go-playground/validator/v10"
)

// AuthHandler serves the signup, login and logout routes.
type AuthHandler struct {
	base
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	users service.UserService,
	sessions auth.SessionManager,
	csrf *auth.CSRFProtector,
	renderer *Renderer,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		base: base{
			renderer: renderer,
			sessions: sessions,
			users:    users,
			csrf:     csrf,
			logger:   logger.With("component", "auth_handler"),
		},
		validate: validator.New(),
	}
}

// LoginForm handles GET /login.
// Authenticated users are redirected away from the login page.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if user := h.currentUser(r); user != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, http.StatusOK, "login_form.html", &templateData{
		Title:     "Log in",
		Flash:     popFlash(w, r),
		CSRFToken: h.ensureCSRF(w, r),
		Next:      safeNext(r.URL.Query().Get("next")),
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := h.verifyCSRF(r); err != nil {
		http.Error(w, "Invalid CSRF token", http.StatusBadRequest)
		return
	}

	form := parseLoginForm(r)
	next := safeNext(r.PostFormValue("next"))

	if err := h.validate.Struct(form); err != nil {
		h.renderer.Render(w, http.StatusUnprocessableEntity, "login_form.html", &templateData{
			Title:     "Log in",
			CSRFToken: h.ensureCSRF(w, r),
			Form:      form,
			Errors:    fieldErrors(err),
			Next:      next,
		})
		return
	}

	user, err := h.users.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One generic message for unknown email and wrong password alike.
			h.renderer.Render(w, http.StatusUnauthorized, "login_form.html", &templateData{
				Title:     "Log in",
				CSRFToken: h.ensureCSRF(w, r),
				Form:      form,
				Errors:    map[string]string{"form": "Invalid credentials"},
				Next:      next,
			})
			return
		}
		h.renderServerError(w, r, err)
		return
	}

	if err := h.sessions.Establish(r.Context(), w, user.ID); err != nil {
		h.renderServerError(w, r, err)
		return
	}

	if next == "" {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// SignupForm handles GET /signup/.
func (h *AuthHandler) SignupForm(w http.ResponseWriter, r *http.Request) {
	if user := h.currentUser(r); user != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderer.Render(w, http.StatusOK, "signup_form.html", &templateData{
		Title:     "Sign up",
		Flash:     popFlash(w, r),
		CSRFToken: h.ensureCSRF(w, r),
	})
}

// Signup handles POST /signup/.
// A successful registration establishes a session immediately.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := h.verifyCSRF(r); err != nil {
		http.Error(w, "Invalid CSRF token", http.StatusBadRequest)
		return
	}

	form := parseSignupForm(r)

	if err := h.validate.Struct(form); err != nil {
		h.renderer.Render(w, http.StatusUnprocessableEntity, "signup_form.html", &templateData{
			Title:     "Sign up",
			CSRFToken: h.ensureCSRF(w, r),
			Form:      form,
			Errors:    fieldErrors(err),
		})
		return
	}

	user, err := h.users.Register(r.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			h.renderer.Render(w, http.StatusUnprocessableEntity, "signup_form.html", &templateData{
				Title:     "Sign up",
				CSRFToken: h.ensureCSRF(w, r),
				Form:      form,
				Errors:    map[string]string{"email": "Email is already registered"},
			})
			return
		}
		// Entity validation that the form validator could not catch, e.g.
		// a password under the rune limit but over the bcrypt byte cap.
		if fields, ok := domainFieldErrors(err); ok {
			h.renderer.Render(w, http.StatusUnprocessableEntity, "signup_form.html", &templateData{
				Title:     "Sign up",
				CSRFToken: h.ensureCSRF(w, r),
				Form:      form,
				Errors:    fields,
			})
			return
		}
		h.renderServerError(w, r, err)
		return
	}

	if err := h.sessions.Establish(r.Context(), w, user.ID); err != nil {
		h.renderServerError(w, r, err)
		return
	}

	setFlash(w, "success", "Welcome! Your account has been created.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout. The route sits behind the auth middleware,
// so an expired session redirects to login before reaching here.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
