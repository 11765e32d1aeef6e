package store

import (
	"context"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
)

// TaskListing pairs a task with display data about its owner.
// The public index shows who created each task without a second query
// per row.
type TaskListing struct {
	Task      domain.Task
	OwnerName string
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store. The task must carry a slug.
	// Returns ErrSlugExists if the slug is already taken (including the
	// race where a concurrent create claimed it first).
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetBySlug retrieves a task by its unique slug.
	// Returns ErrTaskNotFound if no task has the slug.
	GetBySlug(ctx context.Context, slug string) (*domain.Task, error)

	// List returns all tasks ordered by creation time, newest first,
	// joined with their owners' display names.
	List(ctx context.Context) ([]TaskListing, error)

	// ListSlugsWithPrefix returns every existing slug that begins with the
	// given prefix. Slug generation uses this to find the first free
	// numeric suffix without loading whole tasks.
	ListSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
}
