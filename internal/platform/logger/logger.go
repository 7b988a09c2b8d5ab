// Package logger provides structured logging functionality for the
// application: slog setup from configuration plus the context plumbing that
// carries request-scoped loggers to stores and handlers.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/taskwall/taskwall/internal/config"
)

// contextKey is the private type for this package's context keys.
type contextKey struct{}

// loggerKey carries the request-scoped logger.
var loggerKey contextKey

// Setup initializes the application's logging system based on the provided
// configuration: a structured JSON logger writing to stdout at the
// configured level. The returned logger is also installed as slog's default
// so package-level slog calls share the same handler.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	log := slog.New(handler)
	slog.SetDefault(log)

	return log, nil
}

// WithLogger returns a copy of ctx carrying log. Middleware uses this to
// attach a trace-scoped logger to each request.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext returns the logger carried by ctx, falling back to slog's
// default when none is present.
func FromContext(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	return slog.Default()
}

// FromContextOrDefault returns the logger carried by ctx, falling back to
// def. Components that were constructed with their own component-tagged
// logger pass it here so context loggers win but nothing is ever nil.
func FromContextOrDefault(ctx context.Context, def *slog.Logger) *slog.Logger {
	if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return log
	}
	if def != nil {
		return def
	}
	return slog.Default()
}
