package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCheckRateLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{"test environment bypass", "test"},
		{"development environment bypass", "development"},
		{"stress environment bypass", "stress"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			allowed, err := CheckRateLimit(context.Background(), nil, "r", "1", 0, time.Minute)
			assert.NoError(t, err)
			assert.True(t, allowed)
		})
	}

	t.Run("nil redis in production", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		allowed, err := CheckRateLimit(context.Background(), nil, "r", "1", 1, time.Minute)
		assert.Error(t, err)
		assert.False(t, allowed)
	})

	t.Run("window", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		mr, rdb := newRedis(t)
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			allowed, err := CheckRateLimit(ctx, rdb, "comment", "viewer:u1", 2, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
		allowed, err := CheckRateLimit(ctx, rdb, "comment", "viewer:u1", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Greater(t, mr.TTL("rl:comment:viewer:u1"), time.Duration(0))

		mr.FastForward(2 * time.Minute)
		allowed, err = CheckRateLimit(ctx, rdb, "comment", "viewer:u1", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, rdb := newRedis(t)

	app := fiber.New()
	app.Use(Viewer("u1"))
	app.Post("/limited", RateLimit(rdb, 1, time.Minute, "limited"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/limited", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	n, err := rdb.Get(context.Background(), "rl:limited:viewer:u1").Int()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRateLimitFailurePolicy(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

	app := fiber.New()
	app.Get("/open", RateLimit(nil, 1, time.Minute), ok)
	app.Get("/closed", RateLimitWithPolicy(nil, 1, time.Minute, FailClosed), ok)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/closed", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
