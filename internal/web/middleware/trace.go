// Package middleware provides HTTP middleware for the web layer: request
// tracing and session-based authentication gates.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/RakadSK/trabajoprogwebII/internal/platform/logger"
	"github.com/RakadSK/trabajoprogwebII/internal/web/shared"
)

// Trace adds a trace ID to the request context and stamps a trace-tagged
// logger into it. Apply early in the middleware chain so all subsequent
// handlers log with correlation fields.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
