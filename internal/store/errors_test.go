package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/RakadSK/trabajoprogwebII/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestErrorHierarchy(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, store.ErrUserNotFound, store.ErrNotFound)
	assert.ErrorIs(t, store.ErrTaskNotFound, store.ErrNotFound)
	assert.ErrorIs(t, store.ErrEmailExists, store.ErrDuplicate)
	assert.ErrorIs(t, store.ErrSlugExists, store.ErrDuplicate)

	assert.NotErrorIs(t, store.ErrEmailExists, store.ErrNotFound)
	assert.NotErrorIs(t, store.ErrTaskNotFound, store.ErrDuplicate)
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, store.IsNotFoundError(store.ErrTaskNotFound))
	assert.True(t, store.IsNotFoundError(fmt.Errorf("get task: %w", store.ErrTaskNotFound)))
	assert.True(t, store.IsDuplicateError(store.ErrSlugExists))

	assert.False(t, store.IsNotFoundError(store.ErrSlugExists))
	assert.False(t, store.IsDuplicateError(errors.New("plain")))
	assert.False(t, store.IsNotFoundError(nil))
}
