// Package middleware holds HTTP middleware shared by every route.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taskwall/taskwall/internal/api/shared"
	"github.com/taskwall/taskwall/internal/platform/logger"
)

// TraceHeader is the response header carrying the request's trace ID.
const TraceHeader = "X-Trace-ID"

// TraceMiddleware assigns each request a trace ID, exposes it in the
// response headers, and binds a trace-scoped logger into the context so
// downstream handlers and stores log with the same correlation attribute.
// Apply it early in the chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := slog.Default().With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		w.Header().Set(TraceHeader, traceID)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
