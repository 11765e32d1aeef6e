package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/RakadSK/trabajoprogwebII/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestFromContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	attached := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := logger.WithLogger(context.Background(), attached)
	got := logger.FromContext(ctx)
	assert.Same(t, attached, got)

	got.Info("message from context logger")
	assert.Contains(t, buf.String(), "message from context logger")
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	t.Parallel()

	got := logger.FromContext(context.Background())
	assert.NotNil(t, got)
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	def := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("prefers context logger", func(t *testing.T) {
		t.Parallel()

		attached := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := logger.WithLogger(context.Background(), attached)
		assert.Same(t, attached, logger.FromContextOrDefault(ctx, def))
	})

	t.Run("falls back to provided default", func(t *testing.T) {
		t.Parallel()

		assert.Same(t, def, logger.FromContextOrDefault(context.Background(), def))
	})

	t.Run("nil default falls back to global", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, logger.FromContextOrDefault(context.Background(), nil))
	})
}
