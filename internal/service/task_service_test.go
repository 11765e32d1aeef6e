package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RakadSK/trabajoprogwebII/internal/domain"
	"github.com/RakadSK/trabajoprogwebII/internal/mocks"
	"github.com/RakadSK/trabajoprogwebII/internal/service"
	"github.com/RakadSK/trabajoprogwebII/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskAssignsSlug(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	svc := service.NewTaskService(taskStore, discardLogger())
	userID := uuid.New()

	task, err := svc.Create(context.Background(), userID, service.CreateTaskInput{
		Title:    "Buy Milk!",
		Priority: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, "buy-milk", task.Slug)
	assert.Equal(t, "/task/buy-milk/", task.PublicURL())
	assert.Equal(t, userID, task.UserID)
	assert.False(t, task.Completed)
}

func TestCreateTaskSuffixesDuplicateTitles(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	svc := service.NewTaskService(taskStore, discardLogger())
	userID := uuid.New()

	first, err := svc.Create(context.Background(), userID, service.CreateTaskInput{
		Title:    "Buy milk",
		Priority: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "buy-milk", first.Slug)

	second, err := svc.Create(context.Background(), userID, service.CreateTaskInput{
		Title:    "Buy Milk",
		Priority: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "buy-milk-2", second.Slug)

	third, err := svc.Create(context.Background(), userID, service.CreateTaskInput{
		Title:    "buy milk?",
		Priority: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "buy-milk-3", third.Slug)
}

func TestCreateTaskValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   service.CreateTaskInput
		wantErr error
	}{
		{
			name:    "empty title",
			input:   service.CreateTaskInput{Title: "", Priority: 3},
			wantErr: domain.ErrTitleTooShort,
		},
		{
			name:    "priority below range",
			input:   service.CreateTaskInput{Title: "Buy milk", Priority: 0},
			wantErr: domain.ErrInvalidPriority,
		},
		{
			name:    "priority above range",
			input:   service.CreateTaskInput{Title: "Buy milk", Priority: 6},
			wantErr: domain.ErrInvalidPriority,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := service.NewTaskService(mocks.NewMockTaskStore(), discardLogger())
			_, err := svc.Create(context.Background(), uuid.New(), tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateTaskRetriesLostSlugRace(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()

	// First insert loses the uniqueness race to a concurrent create that
	// claimed "buy-milk" between the slug read and the insert.
	calls := 0
	taskStore.CreateFn = func(ctx context.Context, task *domain.Task) error {
		calls++
		if calls == 1 {
			taskStore.Tasks["buy-milk"] = &domain.Task{Slug: "buy-milk"}
			return store.ErrSlugExists
		}
		taskStore.Tasks[task.Slug] = task
		return nil
	}

	svc := service.NewTaskService(taskStore, discardLogger())
	task, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{
		Title:    "Buy milk",
		Priority: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, "buy-milk-2", task.Slug)
}

func TestCreateTaskSlugRetryBudget(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	taskStore.CreateFn = func(ctx context.Context, task *domain.Task) error {
		return store.ErrSlugExists
	}

	svc := service.NewTaskService(taskStore, discardLogger())
	_, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{
		Title:    "Buy milk",
		Priority: 3,
	})
	assert.ErrorIs(t, err, service.ErrSlugExhausted)
}

func TestCreateTaskPropagatesStoreFailure(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	taskStore.CreateError = errors.New("connection refused")

	svc := service.NewTaskService(taskStore, discardLogger())
	_, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{
		Title:    "Buy milk",
		Priority: 3,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrSlugExhausted)
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	userID := uuid.New()
	taskStore.OwnerNames[userID.String()] = "Alice"

	svc := service.NewTaskService(taskStore, discardLogger())

	older, err := svc.Create(context.Background(), userID, service.CreateTaskInput{
		Title:    "Older task",
		Priority: 3,
	})
	require.NoError(t, err)
	older.CreatedAt = time.Now().Add(-time.Hour)

	newer, err := svc.Create(context.Background(), userID, service.CreateTaskInput{
		Title:    "Newer task",
		Priority: 3,
	})
	require.NoError(t, err)

	listings, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, newer.Slug, listings[0].Task.Slug, "newest first")
	assert.Equal(t, older.Slug, listings[1].Task.Slug)
	assert.Equal(t, "Alice", listings[0].OwnerName)
}

func TestGetTaskBySlug(t *testing.T) {
	t.Parallel()

	taskStore := mocks.NewMockTaskStore()
	svc := service.NewTaskService(taskStore, discardLogger())

	created, err := svc.Create(context.Background(), uuid.New(), service.CreateTaskInput{
		Title:    "Buy milk",
		Priority: 3,
	})
	require.NoError(t, err)

	task, err := svc.GetBySlug(context.Background(), "buy-milk")
	require.NoError(t, err)
	assert.Equal(t, created.ID, task.ID)

	_, err = svc.GetBySlug(context.Background(), "no-such-task")
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}
