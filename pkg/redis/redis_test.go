package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRONANANI/ezana/backend/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(context.Background(), &config.Config{
		Redis: config.RedisConfig{Enabled: false, Prefix: "test"},
	})
	require.NoError(t, err)
	return client
}

func TestNew_Disabled(t *testing.T) {
	client := disabledClient(t)

	assert.False(t, client.Enabled())
	assert.Equal(t, "test", client.Prefix())
	assert.NoError(t, client.Close())
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t))
	cfg := RateLimitConfig{Key: "api:127.0.0.1", Limit: 10, Window: time.Minute}

	allowed, remaining, err := limiter.Allow(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 10, remaining)
	assert.False(t, limiter.Enabled())
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(disabledClient(t))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, DashboardKey("p-1"), map[string]int{"a": 1}, TTLShort))

	var dest map[string]int
	found, err := cache.Get(ctx, DashboardKey("p-1"), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, cache.Delete(ctx, DashboardKey("p-1")))
}

func TestKeys(t *testing.T) {
	cache := NewCache(disabledClient(t))

	assert.Equal(t, "dashboard:p-42", DashboardKey("p-42"))
	assert.Equal(t, "test:cache:dashboard:p-42", cache.fullKey(DashboardKey("p-42")))
}
