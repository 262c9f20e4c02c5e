// internal/server/ratelimit.go
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/SpdVpr/svatbot-assistant/internal/common/errors"
	"github.com/SpdVpr/svatbot-assistant/internal/common/logger"
	"github.com/SpdVpr/svatbot-assistant/internal/common/metrics"
)

const rateLimitKeyPrefix = "assistant:ratelimit:"

// RateLimiter enforces a fixed-window per-client request budget backed by
// redis. Redis failures fail open so a limiter outage never blocks answers.
type RateLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
	logger      logger.Logger
}

func NewRateLimiter(client *redis.Client, maxRequests int, window time.Duration, log logger.Logger) *RateLimiter {
	return &RateLimiter{
		client:      client,
		maxRequests: maxRequests,
		window:      window,
		logger: log.With(map[string]interface{}{
			"component": "rate-limiter",
		}),
	}
}

// Allow increments the client's window counter and reports whether the
// request fits the budget.
func (rl *RateLimiter) Allow(ctx context.Context, clientKey string) (bool, error) {
	key := rateLimitKeyPrefix + clientKey

	count, err := rl.client.Incr(ctx, key).Result()
	if err != nil {
		return true, err
	}

	if count == 1 {
		if err := rl.client.Expire(ctx, key, rl.window).Err(); err != nil {
			return true, err
		}
	}

	return count <= int64(rl.maxRequests), nil
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientKey := clientAddr(r)

		allowed, err := rl.Allow(r.Context(), clientKey)
		if err != nil {
			rl.logger.WithError(err).Warn("rate limiter unavailable, allowing request", map[string]interface{}{
				"clientKey": clientKey,
			})
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			metrics.RateLimitedTotal.Inc()
			rl.logger.Warn("request rate limited", map[string]interface{}{
				"clientKey": clientKey,
			})
			writeError(w, apperrors.NewRateLimitedError(clientKey))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
