package middleware

import (
	"log/slog"
	"net/http"

	"github.com/glossadev/glossa-api/internal/api/shared"
	"github.com/glossadev/glossa-api/internal/platform/logger"
)

// NewTraceMiddleware attaches a trace ID to every request and puts a
// logger enriched with it on the request context, so every log line
// downstream carries the correlation ID.
func NewTraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())

			requestLog := log.With(
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			ctx = logger.WithContext(ctx, requestLog)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
