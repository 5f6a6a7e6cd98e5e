package middlewares

import (
	"context"
	"net/http"
	"time"
)

// DefaultTimeout bounds a request when Timeout gets a non-positive value.
const DefaultTimeout = 30 * time.Second

// Timeout sets a deadline on the request context. Props loaders and effects
// observe it through their context; the handler itself is not interrupted.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		d = DefaultTimeout
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
