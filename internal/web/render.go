package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
	"github.com/RakadSK/trabajoprogwebII/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages are the content templates; each is parsed together with the
// shared layout into its own template set.
var pages = []string{
	"index.html",
	"task_view.html",
	"login_form.html",
	"signup_form.html",
	"task_form.html",
	"404.html",
	"500.html",
}

// templateData carries everything a page template can reference.
type templateData struct {
	Title     string
	User      *domain.User
	Flash     *Flash
	CSRFToken string

	// Form state for re-rendering after validation failure
	Form   any
	Errors map[string]string

	// Page payloads
	Tasks []store.TaskListing
	Task  *domain.Task
	Next  string
}

// Renderer renders HTML pages from the embedded template set.
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
}

// NewRenderer parses the embedded templates.
// Parsing happens once at startup so template errors fail fast.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		"priorityLabel": priorityLabel,
	}

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New("layout.html").
			Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = t
	}

	return &Renderer{
		templates: templates,
		logger:    logger.With("component", "renderer"),
	}, nil
}

// Render writes the named page with the given status code.
// The page is rendered into a buffer first so a template failure can still
// produce a clean 500 instead of a half-written response.
func (rn *Renderer) Render(w http.ResponseWriter, status int, page string, data *templateData) {
	t, ok := rn.templates[page]
	if !ok {
		rn.logger.Error("unknown template requested", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = &templateData{}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		rn.logger.Error("failed to execute template",
			"page", page,
			"error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		rn.logger.Error("failed to write response", "page", page, "error", err)
	}
}

// priorityLabel maps a numeric priority to its display name.
func priorityLabel(p int) string {
	switch p {
	case 1:
		return "Highest"
	case 2:
		return "High"
	case 3:
		return "Normal"
	case 4:
		return "Low"
	case 5:
		return "Lowest"
	default:
		return fmt.Sprintf("Priority %d", p)
	}
}
