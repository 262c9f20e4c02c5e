// internal/server/ratelimit_test.go
package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SpdVpr/svatbot-assistant/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestLimiter(t *testing.T, maxRequests int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(client, maxRequests, window, logger.NewTestLogger(t)), mr
}

// ==========================
// Allow Tests
// ==========================

func TestAllow_WithinBudget(t *testing.T) {
	limiter, _ := newTestLimiter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(context.Background(), "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should fit the budget", i+1)
	}

	allowed, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAllow_ClientsCountedSeparately(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)

	allowed, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAllow_WindowExpiryResetsBudget(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)

	allowed, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(time.Minute + time.Second)

	allowed, err = limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestAllow_SetsWindowExpiry(t *testing.T) {
	limiter, mr := newTestLimiter(t, 5, time.Minute)

	_, err := limiter.Allow(context.Background(), "10.0.0.1")
	require.NoError(t, err)

	assert.Equal(t, time.Minute, mr.TTL(rateLimitKeyPrefix+"10.0.0.1"))
}

// ==========================
// Middleware Tests
// ==========================

func TestMiddleware_RateLimitedResponse(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/assistant/ask", nil)
	req.RemoteAddr = "10.0.0.1:51234"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestMiddleware_FailsOpenWhenRedisDown(t *testing.T) {
	limiter, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("POST", "/api/assistant/ask", nil)
		req.RemoteAddr = "10.0.0.1:51234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "limiter outage must not block requests")
	}
}

func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest("POST", "/", nil)
	req.RemoteAddr = "192.168.1.7:42000"
	assert.Equal(t, "192.168.1.7", clientAddr(req))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", clientAddr(req))
}
