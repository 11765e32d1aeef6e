package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
	"github.com/RakadSK/trabajoprogwebII/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn              func(ctx context.Context, task *domain.Task) error
	GetBySlugFn           func(ctx context.Context, slug string) (*domain.Task, error)
	ListFn                func(ctx context.Context) ([]store.TaskListing, error)
	ListSlugsWithPrefixFn func(ctx context.Context, prefix string) ([]string, error)

	// Data for default implementation, keyed by slug
	Tasks map[string]*domain.Task

	// OwnerNames resolves user IDs to display names for List
	OwnerNames map[string]string

	CreateError error
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks:      make(map[string]*domain.Task),
		OwnerNames: make(map[string]string),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if _, exists := m.Tasks[task.Slug]; exists {
		return store.ErrSlugExists
	}

	m.Tasks[task.Slug] = task
	return nil
}

// GetBySlug implements the TaskStore interface
func (m *MockTaskStore) GetBySlug(ctx context.Context, slug string) (*domain.Task, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}

	task, exists := m.Tasks[slug]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]store.TaskListing, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	listings := make([]store.TaskListing, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		listings = append(listings, store.TaskListing{
			Task:      *task,
			OwnerName: m.OwnerNames[task.UserID.String()],
		})
	}
	// Newest first, matching the real store's ordering
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].Task.CreatedAt.After(listings[j].Task.CreatedAt)
	})
	return listings, nil
}

// ListSlugsWithPrefix implements the TaskStore interface
func (m *MockTaskStore) ListSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	if m.ListSlugsWithPrefixFn != nil {
		return m.ListSlugsWithPrefixFn(ctx, prefix)
	}

	var slugs []string
	for slug := range m.Tasks {
		if strings.HasPrefix(slug, prefix) {
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}
