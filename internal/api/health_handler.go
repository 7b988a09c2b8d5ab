package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskwall/taskwall/internal/api/shared"
	"github.com/taskwall/taskwall/internal/platform/logger"
)

// Pinger reports whether the backing database is reachable. *sql.DB satisfies
// it; the in-memory backend runs without one.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	pinger Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler. A nil pinger skips the
// database check and reports healthy on process liveness alone.
func NewHealthHandler(pinger Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for HealthHandler")
	}

	return &HealthHandler{
		pinger: pinger,
		logger: logger.With(slog.String("component", "health_handler")),
	}
}

// Check handles GET /health requests
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.pinger.PingContext(ctx); err != nil {
			log.Error("database ping failed", slog.String("error", err.Error()))
			shared.RespondWithJSON(w, r, http.StatusServiceUnavailable,
				map[string]string{"status": "unhealthy"})
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

// Root handles GET / requests with a welcome payload.
func Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK,
		map[string]string{"message": "Welcome to Taskwall API"})
}
