package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
	"github.com/go-playground/validator/v10"
)

// SignupForm carries the registration form fields.
type SignupForm struct {
	Name     string `validate:"required,min=2,max=120"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=72"`
}

// LoginForm carries the login form fields.
type LoginForm struct {
	Email      string `validate:"required"`
	Password   string `validate:"required"`
	RememberMe bool
}

// TaskForm carries the task creation form fields. DueDate stays a string
// here so the raw value can be re-rendered on validation failure; the
// handler parses it after validation passes.
type TaskForm struct {
	Title       string `validate:"required,min=3,max=200"`
	Description string `validate:"omitempty,max=5000"`
	DueDate     string `validate:"omitempty,datetime=2006-01-02"`
	Priority    int    `validate:"required,min=1,max=5"`
}

// parseSignupForm reads the signup fields from the posted form.
func parseSignupForm(r *http.Request) SignupForm {
	return SignupForm{
		Name:     strings.TrimSpace(r.PostFormValue("name")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

// parseLoginForm reads the login fields from the posted form.
func parseLoginForm(r *http.Request) LoginForm {
	return LoginForm{
		Email:      strings.TrimSpace(r.PostFormValue("email")),
		Password:   r.PostFormValue("password"),
		RememberMe: r.PostFormValue("remember_me") != "",
	}
}

// parseTaskForm reads the task fields from the posted form.
// An absent or unparseable priority falls back to the default so the
// validator reports a range error only for genuinely wrong input.
func parseTaskForm(r *http.Request) TaskForm {
	form := TaskForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: r.PostFormValue("description"),
		DueDate:     strings.TrimSpace(r.PostFormValue("due_date")),
		Priority:    domain.PriorityDefault,
	}

	if raw := r.PostFormValue("priority"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			form.Priority = p
		} else {
			// Force a validation failure on non-numeric input
			form.Priority = 0
		}
	}

	return form
}

// domainFieldMessages maps entity validation errors to the form field they
// belong to and the message to show.
var domainFieldMessages = []struct {
	err     error
	field   string
	message string
}{
	{domain.ErrNameTooShort, "name", "Must be at least 2 characters"},
	{domain.ErrNameTooLong, "name", "Must be at most 120 characters"},
	{domain.ErrEmptyEmail, "email", "This field is required"},
	{domain.ErrInvalidEmail, "email", "Enter a valid email address"},
	{domain.ErrPasswordTooShort, "password", "Must be at least 6 characters"},
	{domain.ErrPasswordTooLong, "password", "Password is too long"},
	{domain.ErrTitleTooShort, "title", "Must be at least 3 characters"},
	{domain.ErrTitleTooLong, "title", "Must be at most 200 characters"},
	{domain.ErrDescriptionTooLong, "description", "Must be at most 5000 characters"},
	{domain.ErrInvalidPriority, "priority", "Priority must be between 1 and 5"},
}

// domainFieldErrors converts an entity validation error into a per-field
// message for re-rendering the form. The form validator runs first, so
// these fire only where the two layers bound input differently (the bcrypt
// byte cap on passwords being the notable case). Returns false for errors
// that are not validation errors.
func domainFieldErrors(err error) (map[string]string, bool) {
	for _, m := range domainFieldMessages {
		if errors.Is(err, m.err) {
			return map[string]string{m.field: m.message}, true
		}
	}
	return nil, false
}

// fieldErrors converts a validator error into per-field messages keyed by
// the lowercased field name, ready for template rendering.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid input"
		return out
	}

	for _, fe := range verrs {
		field := fieldKey(fe.Field())
		out[field] = fieldMessage(fe)
	}
	return out
}

// fieldKey maps a struct field name to its template/form key.
func fieldKey(field string) string {
	if field == "DueDate" {
		return "due_date"
	}
	return strings.ToLower(field)
}

// fieldMessage renders a human-readable message for one failed rule.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("Must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "datetime":
		return "Use the YYYY-MM-DD date format"
	default:
		return "Invalid value"
	}
}
