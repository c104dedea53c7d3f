package middleware

import (
	"context"
	"net/http"
	"time"

	"mirrorbot-hq/tgmirror/pkg/proxy"
)

// TimeoutMiddleware enforces a per-request deadline using
// context.WithTimeout. Handlers observe cancellation through the request
// context; if the deadline passes before the handler finishes, the client
// receives a 504 in the Bot API envelope.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(w, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				if ctx.Err() == context.DeadlineExceeded {
					proxy.WriteError(w, http.StatusGatewayTimeout, "Gateway Timeout")
				}
			}
		})
	}
}
