package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub/pkg/logger"
)

// RequestID attaches a trace ID to the request context logger and echoes it
// back to the client. Incoming X-Trace-ID headers are honored so upstream
// proxies can stitch traces together.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := logger.With(r.Context(), "traceID", traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
