package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"picboard/internal/httputil"
	"picboard/internal/metrics"
)

// Limiter counts hits per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// RateLimit allows at most limit requests per window for each client IP on
// the wrapped routes. resource names the counter. A nil limiter disables the
// check, and limiter errors let the request through.
func RateLimit(limiter Limiter, resource string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := resource + ":" + httputil.ClientIP(r)

			allowed, err := limiter.Allow(r.Context(), key, limit, window)
			if err != nil {
				metrics.RateLimitErrors.Inc()
				log.Printf("[RateLimit] store error, allowing request: resource=%s err=%v", resource, err)
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				metrics.RateLimited.WithLabelValues(resource).Inc()
				httputil.WriteTooManyRequests(w, "Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
