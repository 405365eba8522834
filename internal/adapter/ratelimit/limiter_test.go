package ratelimit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter(2, time.Minute)
	now := time.Date(2025, 6, 1, 10, 0, 15, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	res, err := l.Allow(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(1), res.Remaining)

	res, _ = l.Allow(ctx, "login:1.2.3.4")
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(0), res.Remaining)

	res, _ = l.Allow(ctx, "login:1.2.3.4")
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(3), res.CurrentHits)
	assert.Equal(t, 45*time.Second, res.RetryAfter)

	// Other keys are independent
	res, _ = l.Allow(ctx, "login:5.6.7.8")
	assert.True(t, res.Allowed)

	// Next window starts over
	now = now.Add(time.Minute)
	res, _ = l.Allow(ctx, "login:1.2.3.4")
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(1), res.CurrentHits)
}

func TestNew_MemoryFallback(t *testing.T) {
	l, closeFn, err := New("", 5, time.Minute)
	require.NoError(t, err)
	defer closeFn()
	_, ok := l.(*MemoryLimiter)
	assert.True(t, ok)

	_, _, err = New("not a url", 5, time.Minute)
	assert.Error(t, err)
}

func TestRedisLimiter(t *testing.T) {
	url := os.Getenv("LEXDESK_TEST_REDIS_URL")
	if url == "" {
		t.Skip("LEXDESK_TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	l := NewRedisLimiter(client, "test:rl:", 1, time.Minute)
	key := uuid.NewString()

	res, err := l.Allow(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Allow(context.Background(), key)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
}
