package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"mirrorbot-hq/tgmirror/pkg/proxy"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a
// 500 response in the Bot API envelope. The stack trace is logged but never
// exposed to clients.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())
				stack := debug.Stack()

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)

				proxy.WriteError(w, http.StatusInternalServerError, "Unknown error.")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
