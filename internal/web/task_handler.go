package web

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
	"github.com/RakadSK/trabajoprogwebII/internal/service"
	"github.com/RakadSK/trabajoprogwebII/internal/service/auth"
	"github.com/RakadSK/trabajoprogwebII/internal/store"
	"github.com/RakadSK/trabajoprogwebII/internal/web/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// TaskHandler serves the public task pages and the authenticated
// task-creation form.
type TaskHandler struct {
	base
	tasks    service.TaskService
	validate *validator.Validate
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(
	tasks service.TaskService,
	users service.UserService,
	sessions auth.SessionManager,
	csrf *auth.CSRFProtector,
	renderer *Renderer,
	logger *slog.Logger,
) *TaskHandler {
	return &TaskHandler{
		base: base{
			renderer: renderer,
			sessions: sessions,
			users:    users,
			csrf:     csrf,
			logger:   logger.With("component", "task_handler"),
		},
		tasks:    tasks,
		validate: validator.New(),
	}
}

// Index handles GET /: the public task list, newest first.
func (h *TaskHandler) Index(w http.ResponseWriter, r *http.Request) {
	listings, err := h.tasks.List(r.Context())
	if err != nil {
		h.renderServerError(w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "index.html", &templateData{
		User:  h.currentUser(r),
		Flash: popFlash(w, r),
		Tasks: listings,
	})
}

// Show handles GET /task/{slug}/: the public task detail page.
func (h *TaskHandler) Show(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")

	task, err := h.tasks.GetBySlug(r.Context(), slugParam)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			h.renderNotFound(w, r)
			return
		}
		h.renderServerError(w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "task_view.html", &templateData{
		Title: task.Title,
		User:  h.currentUser(r),
		Flash: popFlash(w, r),
		Task:  task,
	})
}

// NewForm handles GET /admin/task/: the task creation form.
// The route sits behind the auth middleware.
func (h *TaskHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, http.StatusOK, "task_form.html", &templateData{
		Title:     "New task",
		User:      h.currentUser(r),
		Flash:     popFlash(w, r),
		CSRFToken: h.ensureCSRF(w, r),
		Form:      TaskForm{Priority: domain.PriorityDefault},
	})
}

// Create handles POST /admin/task/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		// The auth middleware puts the ID there; reaching this means the
		// route was wired without it.
		h.renderServerError(w, r, errors.New("missing user ID in authenticated request"))
		return
	}

	if err := h.verifyCSRF(r); err != nil {
		http.Error(w, "Invalid CSRF token", http.StatusBadRequest)
		return
	}

	form := parseTaskForm(r)

	if err := h.validate.Struct(form); err != nil {
		h.renderTaskForm(w, r, form, fieldErrors(err), http.StatusUnprocessableEntity)
		return
	}

	input := service.CreateTaskInput{
		Title:       form.Title,
		Description: form.Description,
		Priority:    form.Priority,
	}
	if form.DueDate != "" {
		due, err := time.Parse("2006-01-02", form.DueDate)
		if err != nil {
			h.renderTaskForm(w, r, form,
				map[string]string{"due_date": "Use the YYYY-MM-DD date format"},
				http.StatusUnprocessableEntity)
			return
		}
		input.DueDate = &due
	}

	task, err := h.tasks.Create(r.Context(), userID, input)
	if err != nil {
		if fields, ok := domainFieldErrors(err); ok {
			h.renderTaskForm(w, r, form, fields, http.StatusUnprocessableEntity)
			return
		}
		if errors.Is(err, service.ErrSlugExhausted) {
			h.renderTaskForm(w, r, form,
				map[string]string{"form": "Could not save the task right now, please try again."},
				http.StatusConflict)
			return
		}
		h.renderServerError(w, r, err)
		return
	}

	setFlash(w, "success", "Task created successfully")
	http.Redirect(w, r, task.PublicURL(), http.StatusSeeOther)
}

// renderTaskForm re-renders the creation form with errors.
func (h *TaskHandler) renderTaskForm(
	w http.ResponseWriter,
	r *http.Request,
	form TaskForm,
	errs map[string]string,
	status int,
) {
	h.renderer.Render(w, status, "task_form.html", &templateData{
		Title:     "New task",
		User:      h.currentUser(r),
		CSRFToken: h.ensureCSRF(w, r),
		Form:      form,
		Errors:    errs,
	})
}

// NotFound renders the 404 page for unmatched routes.
func (h *TaskHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderNotFound(w, r)
}
