package mocks

import (
	"context"
	"net/http"

	"github.com/RakadSK/trabajoprogwebII/internal/service/auth"
	"github.com/google/uuid"
)

// MockSessionManager implements auth.SessionManager for testing
type MockSessionManager struct {
	// Function fields for customizable behavior
	EstablishFn func(ctx context.Context, w http.ResponseWriter, userID uuid.UUID) error
	CurrentFn   func(ctx context.Context, r *http.Request) (uuid.UUID, error)
	ClearFn     func(w http.ResponseWriter)

	// Data for default implementation
	CurrentUserID  uuid.UUID
	CurrentError   error
	EstablishError error

	// Call recording
	EstablishedID uuid.UUID
	Cleared       bool
}

// Ensure MockSessionManager implements auth.SessionManager
var _ auth.SessionManager = (*MockSessionManager)(nil)

// NewMockSessionManager creates a mock with no active session.
func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		CurrentError: auth.ErrMissingToken,
	}
}

// NewAuthenticatedSessionManager creates a mock whose Current always
// reports the given user as signed in.
func NewAuthenticatedSessionManager(userID uuid.UUID) *MockSessionManager {
	return &MockSessionManager{
		CurrentUserID: userID,
	}
}

// Establish implements the SessionManager interface
func (m *MockSessionManager) Establish(ctx context.Context, w http.ResponseWriter, userID uuid.UUID) error {
	if m.EstablishFn != nil {
		return m.EstablishFn(ctx, w, userID)
	}

	if m.EstablishError != nil {
		return m.EstablishError
	}

	m.EstablishedID = userID
	m.CurrentUserID = userID
	m.CurrentError = nil
	return nil
}

// Current implements the SessionManager interface
func (m *MockSessionManager) Current(ctx context.Context, r *http.Request) (uuid.UUID, error) {
	if m.CurrentFn != nil {
		return m.CurrentFn(ctx, r)
	}

	if m.CurrentError != nil {
		return uuid.Nil, m.CurrentError
	}
	return m.CurrentUserID, nil
}

// Clear implements the SessionManager interface
func (m *MockSessionManager) Clear(w http.ResponseWriter) {
	if m.ClearFn != nil {
		m.ClearFn(w)
		return
	}

	m.Cleared = true
	m.CurrentUserID = uuid.Nil
	m.CurrentError = auth.ErrMissingToken
}
