package logger

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskwall/taskwall/internal/config"
)

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		name       string
		logLevel   string
		enabled    slog.Level
		notEnabled slog.Level
		checkBelow bool
	}{
		{
			name:       "debug enables everything",
			logLevel:   "debug",
			enabled:    slog.LevelDebug,
			checkBelow: false,
		},
		{
			name:       "info filters debug",
			logLevel:   "info",
			enabled:    slog.LevelInfo,
			notEnabled: slog.LevelDebug,
			checkBelow: true,
		},
		{
			name:       "warn filters info",
			logLevel:   "warn",
			enabled:    slog.LevelWarn,
			notEnabled: slog.LevelInfo,
			checkBelow: true,
		},
		{
			name:       "error filters warn",
			logLevel:   "error",
			enabled:    slog.LevelError,
			notEnabled: slog.LevelWarn,
			checkBelow: true,
		},
		{
			name:       "unknown level falls back to info",
			logLevel:   "verbose",
			enabled:    slog.LevelInfo,
			notEnabled: slog.LevelDebug,
			checkBelow: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := Setup(config.ServerConfig{LogLevel: tt.logLevel})
			require.NoError(t, err)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.True(t, log.Enabled(ctx, tt.enabled))
			if tt.checkBelow {
				assert.False(t, log.Enabled(ctx, tt.notEnabled))
			}
		})
	}
}

func TestSetupInstallsDefaultLogger(t *testing.T) {
	log, err := Setup(config.ServerConfig{LogLevel: "info"})
	require.NoError(t, err)

	assert.Same(t, log, slog.Default())
}

func TestWithLoggerRoundTrip(t *testing.T) {
	base := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := WithLogger(context.Background(), base)

	assert.Same(t, base, FromContext(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	got := FromContext(context.Background())

	require.NotNil(t, got)
	assert.Same(t, slog.Default(), got)
}

func TestFromContextOrDefault(t *testing.T) {
	scoped := slog.New(slog.NewTextHandler(io.Discard, nil))
	component := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("context logger wins", func(t *testing.T) {
		ctx := WithLogger(context.Background(), scoped)
		assert.Same(t, scoped, FromContextOrDefault(ctx, component))
	})

	t.Run("falls back to the component logger", func(t *testing.T) {
		assert.Same(t, component, FromContextOrDefault(context.Background(), component))
	})

	t.Run("never returns nil", func(t *testing.T) {
		got := FromContextOrDefault(context.Background(), nil)
		require.NotNil(t, got)
		assert.Same(t, slog.Default(), got)
	})
}
