package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RakadSK/trabajoprogwebII/internal/mocks"
	"github.com/RakadSK/trabajoprogwebII/internal/web/middleware"
	"github.com/RakadSK/trabajoprogwebII/internal/web/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	t.Parallel()

	m := middleware.NewAuthMiddleware(mocks.NewMockSessionManager())

	called := false
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/task/", nil))

	assert.False(t, called, "protected handler must not run without a session")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next=%2Fadmin%2Ftask%2F", rec.Header().Get("Location"))
}

func TestRequireAuthPreservesQueryInNext(t *testing.T) {
	t.Parallel()

	m := middleware.NewAuthMiddleware(mocks.NewMockSessionManager())
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/task/?draft=1", nil))

	assert.Equal(t, "/login?next=%2Fadmin%2Ftask%2F%3Fdraft%3D1", rec.Header().Get("Location"))
}

func TestRequireAuthInjectsUserID(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	m := middleware.NewAuthMiddleware(mocks.NewAuthenticatedSessionManager(userID))

	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok := shared.GetUserID(r.Context())
		require.True(t, ok)
		assert.Equal(t, userID, got)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/task/", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
