package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		userID      uuid.UUID
		title       string
		description string
		dueDate     *time.Time
		priority    int
		wantErr     error
	}{
		{
			name:     "valid task",
			userID:   owner,
			title:    "Buy milk",
			dueDate:  &due,
			priority: 3,
			wantErr:  nil,
		},
		{
			name:     "valid without due date",
			userID:   owner,
			title:    "Buy milk",
			priority: 1,
			wantErr:  nil,
		},
		{
			name:     "missing owner",
			userID:   uuid.Nil,
			title:    "Buy milk",
			priority: 3,
			wantErr:  domain.ErrEmptyTaskUserID,
		},
		{
			name:     "title too short",
			userID:   owner,
			title:    "ab",
			priority: 3,
			wantErr:  domain.ErrTitleTooShort,
		},
		{
			name:     "title too long",
			userID:   owner,
			title:    strings.Repeat("t", 201),
			priority: 3,
			wantErr:  domain.ErrTitleTooLong,
		},
		{
			name:     "multibyte title at the limit",
			userID:   owner,
			title:    strings.Repeat("é", 200),
			priority: 3,
			wantErr:  nil,
		},
		{
			name:     "multibyte title over the limit",
			userID:   owner,
			title:    strings.Repeat("é", 201),
			priority: 3,
			wantErr:  domain.ErrTitleTooLong,
		},
		{
			name:        "multibyte description at the limit",
			userID:      owner,
			title:       "Buy milk",
			description: strings.Repeat("é", 5000),
			priority:    3,
			wantErr:     nil,
		},
		{
			name:        "description too long",
			userID:      owner,
			title:       "Buy milk",
			description: strings.Repeat("d", 5001),
			priority:    3,
			wantErr:     domain.ErrDescriptionTooLong,
		},
		{
			name:     "priority below range",
			userID:   owner,
			title:    "Buy milk",
			priority: 0,
			wantErr:  domain.ErrInvalidPriority,
		},
		{
			name:     "priority above range",
			userID:   owner,
			title:    "Buy milk",
			priority: 6,
			wantErr:  domain.ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := domain.NewTask(tt.userID, tt.title, tt.description, tt.dueDate, tt.priority)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, task)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, task.ID)
			assert.False(t, task.Completed)
			assert.Empty(t, task.Slug, "slug is assigned later by the service")
		})
	}
}

func TestTaskValidateRequiresSlug(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask(uuid.New(), "Buy milk", "", nil, 3)
	require.NoError(t, err)

	assert.ErrorIs(t, task.Validate(), domain.ErrEmptySlug)

	task.Slug = "buy-milk"
	assert.NoError(t, task.Validate())
}

func TestTaskPublicURL(t *testing.T) {
	t.Parallel()

	task := &domain.Task{Slug: "buy-milk"}
	assert.Equal(t, "/task/buy-milk/", task.PublicURL())
}

func TestNewTaskTrimsTitle(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask(uuid.New(), "  Buy milk  ", "", nil, 3)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
}
