package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Task priority bounds. Priority 1 is the most urgent, 5 the least.
const (
	PriorityHighest = 1
	PriorityDefault = 3
	PriorityLowest  = 5
)

// Task validation errors
var (
	ErrEmptyTaskID        = errors.New("task ID cannot be empty")
	ErrEmptyTaskUserID    = errors.New("task must belong to a user")
	ErrTitleTooShort      = errors.New("title must be at least 3 characters long")
	ErrTitleTooLong       = errors.New("title must be at most 200 characters long")
	ErrDescriptionTooLong = errors.New("description must be at most 5000 characters long")
	ErrInvalidPriority    = errors.New("priority must be between 1 (high) and 5 (low)")
	ErrEmptySlug          = errors.New("task slug cannot be empty")
)

// Task is a single to-do item owned by exactly one user.
// The slug uniquely identifies the task in public URLs.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    int        `json:"priority"`
	Completed   bool       `json:"completed"`
	Slug        string     `json:"slug"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTask creates a new Task owned by the given user.
// The slug is left empty; the caller assigns a unique slug before storage.
// Returns an error if validation fails (slug emptiness excepted).
func NewTask(userID uuid.UUID, title, description string, dueDate *time.Time, priority int) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: description,
		DueDate:     dueDate,
		Priority:    priority,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.validateFields(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data, including its slug.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if err := t.validateFields(); err != nil {
		return err
	}
	if t.Slug == "" {
		return ErrEmptySlug
	}
	return nil
}

// validateFields checks everything except the slug, which is assigned
// after construction.
func (t *Task) validateFields() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.UserID == uuid.Nil {
		return ErrEmptyTaskUserID
	}
	// Lengths count runes, matching the form validator and the VARCHAR
	// column limits, so multibyte input is bounded the same everywhere.
	if utf8.RuneCountInString(t.Title) < 3 {
		return ErrTitleTooShort
	}
	if utf8.RuneCountInString(t.Title) > 200 {
		return ErrTitleTooLong
	}
	if utf8.RuneCountInString(t.Description) > 5000 {
		return ErrDescriptionTooLong
	}
	if t.Priority < PriorityHighest || t.Priority > PriorityLowest {
		return ErrInvalidPriority
	}
	return nil
}

// PublicURL returns the public URL path for this task.
func (t *Task) PublicURL() string {
	return "/task/" + t.Slug + "/"
}
