package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/RakadSK/trabajoprogwebII/internal/service"
	"github.com/RakadSK/trabajoprogwebII/internal/web/shared"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTask seeds a task through the real creation path.
func (env *testEnv) createTask(t *testing.T, userID uuid.UUID, title string) string {
	t.Helper()

	task, err := env.tasks.Create(context.Background(), userID, service.CreateTaskInput{
		Title:    title,
		Priority: 3,
	})
	require.NoError(t, err)
	return task.Slug
}

func TestIndexListsTasks(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := env.registerUser(t, "Alice", "alice@example.com", "password123")
	env.taskStore.OwnerNames[userID.String()] = "Alice"
	env.createTask(t, userID, "Buy milk")
	env.createTask(t, userID, "Walk the dog")

	rec := httptest.NewRecorder()
	env.taskHandler.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Buy milk")
	assert.Contains(t, body, "Walk the dog")
	assert.Contains(t, body, "/task/buy-milk/")
	assert.Contains(t, body, "Alice")
}

func TestIndexEmpty(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := httptest.NewRecorder()
	env.taskHandler.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShowTask(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := env.registerUser(t, "Alice", "alice@example.com", "password123")
	slug := env.createTask(t, userID, "Buy milk")

	router := chi.NewRouter()
	router.Get("/task/{slug}/", env.taskHandler.Show)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/task/"+slug+"/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Buy milk")
}

func TestShowUnknownSlug(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	router := chi.NewRouter()
	router.Get("/task/{slug}/", env.taskHandler.Show)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/task/no-such-task/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewTaskFormPage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := httptest.NewRecorder()
	env.taskHandler.NewForm(rec, httptest.NewRequest(http.MethodGet, "/admin/task/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "New task")
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := env.registerUser(t, "Alice", "alice@example.com", "password123")

	req := env.postForm(t, "/admin/task/", url.Values{
		"title":       {"Buy milk"},
		"description": {"Two liters, whole"},
		"due_date":    {"2027-01-15"},
		"priority":    {"2"},
	})
	req = req.WithContext(shared.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	env.taskHandler.Create(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/task/buy-milk/", rec.Header().Get("Location"))

	created, ok := env.taskStore.Tasks["buy-milk"]
	require.True(t, ok)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, 2, created.Priority)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2027-01-15", created.DueDate.Format("2006-01-02"))
}

func TestCreateTaskDefaultsPriority(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := env.registerUser(t, "Alice", "alice@example.com", "password123")

	req := env.postForm(t, "/admin/task/", url.Values{
		"title": {"Buy milk"},
	})
	req = req.WithContext(shared.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	env.taskHandler.Create(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	created, ok := env.taskStore.Tasks["buy-milk"]
	require.True(t, ok)
	assert.Equal(t, 3, created.Priority)
}

func TestCreateTaskValidationErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		form url.Values
		want string
	}{
		{
			name: "missing title",
			form: url.Values{},
			want: "This field is required",
		},
		{
			name: "priority out of range",
			form: url.Values{
				"title":    {"Buy milk"},
				"priority": {"9"},
			},
			want: "Must be at most 5",
		},
		{
			name: "malformed due date",
			form: url.Values{
				"title":    {"Buy milk"},
				"due_date": {"15/01/2027"},
			},
			want: "Use the YYYY-MM-DD date format",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t)
			userID := env.registerUser(t, "Alice", "alice@example.com", "password123")

			req := env.postForm(t, "/admin/task/", tc.form)
			req = req.WithContext(shared.WithUserID(req.Context(), userID))
			rec := httptest.NewRecorder()

			env.taskHandler.Create(rec, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
			assert.Empty(t, env.taskStore.Tasks)
		})
	}
}

func TestCreateTaskMultibyteTitleWithinLimit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := env.registerUser(t, "Alice", "alice@example.com", "password123")

	// 150 runes but 300 bytes; every layer counts runes, so this is valid.
	req := env.postForm(t, "/admin/task/", url.Values{
		"title": {strings.Repeat("é", 150)},
	})
	req = req.WithContext(shared.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	env.taskHandler.Create(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/task/"+strings.Repeat("e", 150)+"/", rec.Header().Get("Location"))
}

func TestCreateTaskMultibyteTitleOverLimit(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := env.registerUser(t, "Alice", "alice@example.com", "password123")

	req := env.postForm(t, "/admin/task/", url.Values{
		"title": {strings.Repeat("é", 201)},
	})
	req = req.WithContext(shared.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	env.taskHandler.Create(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Must be at most 200 characters")
	assert.Empty(t, env.taskStore.Tasks)
}

func TestCreateTaskRejectsMissingCSRF(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := env.registerUser(t, "Alice", "alice@example.com", "password123")

	form := url.Values{"title": {"Buy milk"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/task/", nil)
	req.PostForm = form
	req = req.WithContext(shared.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	env.taskHandler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, env.taskStore.Tasks)
}

func TestCreateDuplicateTitleGetsSuffixedSlug(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	userID := env.registerUser(t, "Alice", "alice@example.com", "password123")
	env.createTask(t, userID, "Buy milk")

	req := env.postForm(t, "/admin/task/", url.Values{
		"title": {"Buy milk"},
	})
	req = req.WithContext(shared.WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()

	env.taskHandler.Create(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/task/buy-milk-2/", rec.Header().Get("Location"))
}
