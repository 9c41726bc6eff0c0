package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLevels(t *testing.T) {
	ctx := context.Background()

	assert.True(t, New("dev", "").Enabled(ctx, slog.LevelDebug))
	assert.False(t, New("prod", "").Enabled(ctx, slog.LevelDebug))
	assert.True(t, New("prod", "debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, New("dev", "warn").Enabled(ctx, slog.LevelInfo))
	assert.True(t, New("dev", "bogus").Enabled(ctx, slog.LevelDebug))
}
