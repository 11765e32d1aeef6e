package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
	"github.com/RakadSK/trabajoprogwebII/internal/domain/slug"
	"github.com/RakadSK/trabajoprogwebII/internal/store"
	"github.com/google/uuid"
)

// maxSlugAttempts bounds how often task creation regenerates the slug after
// losing a uniqueness race to a concurrent insert. Past the bound the
// operation fails with ErrSlugExhausted instead of looping.
const maxSlugAttempts = 3

// CreateTaskInput carries the validated form fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    int
}

// TaskService provides task creation and retrieval.
type TaskService interface {
	// Create builds a task for the given owner, assigns it a unique slug
	// derived from the title, and persists it. Returns domain validation
	// errors for bad input, store.ErrInvalidEntity if the owner does not
	// exist, and ErrSlugExhausted if the slug race could not be won within
	// the retry budget.
	Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error)

	// List returns all tasks, newest first, with owner display names.
	List(ctx context.Context) ([]store.TaskListing, error)

	// GetBySlug returns the task with the given slug.
	// Returns store.ErrTaskNotFound if no task has it.
	GetBySlug(ctx context.Context, slugValue string) (*domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) TaskService {
	return &TaskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", "task_service"),
	}
}

// Create persists a new task, retrying slug generation on collision.
func (s *TaskServiceImpl) Create(ctx context.Context, userID uuid.UUID, input CreateTaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(userID, input.Title, input.Description, input.DueDate, input.Priority)
	if err != nil {
		s.logger.Debug("task creation rejected by validation",
			"error", err,
			"user_id", userID)
		return nil, err
	}

	base := slug.Slugify(task.Title)
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		taken, err := s.takenSlugs(ctx, base)
		if err != nil {
			return nil, err
		}

		task.Slug = slug.Generate(task.Title, taken)

		err = s.taskStore.Create(ctx, task)
		if err == nil {
			s.logger.Info("task created",
				"task_id", task.ID,
				"user_id", userID,
				"slug", task.Slug,
				"attempt", attempt)
			return task, nil
		}

		if errors.Is(err, store.ErrSlugExists) {
			// A concurrent create claimed the slug between our read and
			// the insert. Re-read the slug set and try the next suffix.
			s.logger.Warn("lost slug uniqueness race, regenerating",
				"slug", task.Slug,
				"attempt", attempt)
			continue
		}

		s.logger.Error("failed to create task",
			"error", err,
			"task_id", task.ID,
			"user_id", userID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Error("slug retry budget exhausted",
		"base_slug", base,
		"attempts", maxSlugAttempts)
	return nil, ErrSlugExhausted
}

// takenSlugs loads the existing slugs sharing the base prefix into a set
// for the generator.
func (s *TaskServiceImpl) takenSlugs(ctx context.Context, base string) (map[string]struct{}, error) {
	existing, err := s.taskStore.ListSlugsWithPrefix(ctx, base)
	if err != nil {
		s.logger.Error("failed to list existing slugs",
			"error", err,
			"base_slug", base)
		return nil, fmt.Errorf("failed to list existing slugs: %w", err)
	}

	taken := make(map[string]struct{}, len(existing))
	for _, sl := range existing {
		taken[sl] = struct{}{}
	}
	return taken, nil
}

// List returns all tasks, newest first.
func (s *TaskServiceImpl) List(ctx context.Context) ([]store.TaskListing, error) {
	listings, err := s.taskStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return listings, nil
}

// GetBySlug returns the task addressed by the slug.
func (s *TaskServiceImpl) GetBySlug(ctx context.Context, slugValue string) (*domain.Task, error) {
	task, err := s.taskStore.GetBySlug(ctx, slugValue)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found", "slug", slugValue)
			return nil, err
		}
		s.logger.Error("failed to get task by slug",
			"error", err,
			"slug", slugValue)
		return nil, fmt.Errorf("failed to get task by slug: %w", err)
	}
	return task, nil
}
