package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRedisLimiter(t *testing.T, limit int) (*RateLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRateLimiter(client, RateLimitConfig{Window: time.Minute, Limit: limit, KeyPrefix: "test:ratelimit"}), mr
}

func TestRateLimiterRedis(t *testing.T) {
	rl, _ := newRedisLimiter(t, 2)
	ctx := context.Background()

	allowed, remaining, _, err := rl.IsAllowed(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)

	allowed, _, _, err = rl.IsAllowed(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, remaining, _, err = rl.IsAllowed(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)

	// other clients have their own window
	allowed, remaining, _, err = rl.IsAllowed(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
}

func TestRateLimiterRedisDownFailsOpen(t *testing.T) {
	rl, mr := newRedisLimiter(t, 1)
	mr.Close()

	r := gin.New()
	r.POST("/api/recipe", rl.RateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recipe", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
}

func TestRateLimitMiddlewareRejects(t *testing.T) {
	rl, _ := newRedisLimiter(t, 1)

	r := gin.New()
	r.POST("/api/recipe", rl.RateLimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recipe", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/recipe", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimiterLocalFallback(t *testing.T) {
	rl := NewWriteRateLimiter(nil, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, _, err := rl.IsAllowed(ctx, "client")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i)
	}
	allowed, remaining, _, err := rl.IsAllowed(ctx, "client")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)

	allowed, _, _, err = rl.IsAllowed(ctx, "other")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimiterLocalEvictsIdleClients(t *testing.T) {
	rl := NewWriteRateLimiter(nil, 2)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, _, err := rl.IsAllowed(ctx, "10.0.0.1")
		require.NoError(t, err)
	}
	allowed, _, _, err := rl.IsAllowed(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Len(t, rl.local, 2)

	// half a window later nothing is idle long enough
	clock = clock.Add(30 * time.Second)
	_, _, _, err = rl.IsAllowed(ctx, "10.0.0.3")
	require.NoError(t, err)
	assert.Len(t, rl.local, 3)

	clock = clock.Add(2 * time.Minute)
	allowed, remaining, _, err := rl.IsAllowed(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed, "an evicted client starts with a full bucket")
	assert.Equal(t, 1, remaining)
	assert.Len(t, rl.local, 1)
}
