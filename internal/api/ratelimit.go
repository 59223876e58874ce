package api

import (
	"log/slog"
	"net/http"

	"github.com/ubugingoapp/ubugingo-server/internal/http/response"
	"github.com/ubugingoapp/ubugingo-server/internal/ratelimit"
)

// RateLimitMiddleware rate limits requests by client IP.
// Returns 429 Too Many Requests when the limit is exceeded.
func RateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// middleware.RealIP has already rewritten RemoteAddr from the
			// forwarding headers; strip the port to key per host.
			key := r.RemoteAddr
			for i := len(key) - 1; i >= 0; i-- {
				if key[i] == ':' {
					key = key[:i]
					break
				}
			}

			if !limiter.Allow(key) {
				if logger != nil {
					logger.Warn("rate limit exceeded", "ip", key, "path", r.URL.Path)
				}
				response.Error(w, http.StatusTooManyRequests, "Too many requests. Please try again later.", logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
