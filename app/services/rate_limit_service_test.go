package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/khabarhub/newsads/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRateLimiter(t *testing.T) (*RateLimitServiceImpl, *miniredis.Miniredis, *time.Time) {
	t.Helper()
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	svc := &RateLimitServiceImpl{
		rc:       rc,
		enabled:  true,
		failOpen: false,
		now:      func() time.Time { return now },
	}
	return svc, mr, &now
}

func TestAllow_WithinLimit(t *testing.T) {
	svc, _, _ := testRateLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		decision, err := svc.Allow(ctx, "rate_limit:1.2.3.4:login", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, 5, decision.Limit)
		assert.Equal(t, 4-i, decision.Remaining)
	}
}

func TestAllow_OverLimit(t *testing.T) {
	svc, _, _ := testRateLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Allow(ctx, "rate_limit:1.2.3.4:login", 5, time.Minute)
		require.NoError(t, err)
	}

	decision, err := svc.Allow(ctx, "rate_limit:1.2.3.4:login", 5, time.Minute)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Zero(t, decision.Remaining)
	assert.Greater(t, decision.ResetSeconds, 0)
	assert.LessOrEqual(t, decision.ResetSeconds, 60)
}

func TestAllow_WindowSlides(t *testing.T) {
	svc, _, now := testRateLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Allow(ctx, "rate_limit:1.2.3.4:login", 5, time.Minute)
		require.NoError(t, err)
	}

	decision, err := svc.Allow(ctx, "rate_limit:1.2.3.4:login", 5, time.Minute)
	require.NoError(t, err)
	require.False(t, decision.Allowed)

	// Once the window has passed, the old entries are trimmed and requests
	// flow again.
	*now = now.Add(61 * time.Second)
	decision, err = svc.Allow(ctx, "rate_limit:1.2.3.4:login", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 4, decision.Remaining)
}

func TestAllow_IndependentKeys(t *testing.T) {
	svc, _, _ := testRateLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Allow(ctx, "rate_limit:1.2.3.4:login", 5, time.Minute)
		require.NoError(t, err)
	}

	// A different client and a different bucket are unaffected.
	decision, err := svc.Allow(ctx, "rate_limit:5.6.7.8:login", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = svc.Allow(ctx, "rate_limit:1.2.3.4:public", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestAllow_RedisOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	failOpen := &RateLimitServiceImpl{rc: rc, enabled: true, failOpen: true, now: utils.UTCNow}
	decision, err := failOpen.Allow(context.Background(), "rate_limit:1.2.3.4:login", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	failClosed := &RateLimitServiceImpl{rc: rc, enabled: true, failOpen: false, now: utils.UTCNow}
	_, err = failClosed.Allow(context.Background(), "rate_limit:1.2.3.4:login", 5, time.Minute)
	assert.Error(t, err)
}

func TestAllow_NilClient(t *testing.T) {
	// With caching disabled the limiter receives no client at all; the check
	// must degrade the same way as an outage, not dereference nil.
	failOpen := NewRateLimitService(nil, true, true)
	decision, err := failOpen.Allow(context.Background(), "rate_limit:1.2.3.4:login", 5, time.Minute)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, 5, decision.Remaining)

	failClosed := NewRateLimitService(nil, true, false)
	_, err = failClosed.Allow(context.Background(), "rate_limit:1.2.3.4:login", 5, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimiterUnavailable)
}

func TestAllow_Disabled(t *testing.T) {
	svc := NewRateLimitService(nil, false, false)

	// Every check passes regardless of volume or backend.
	for i := 0; i < 10; i++ {
		decision, err := svc.Allow(context.Background(), "rate_limit:1.2.3.4:login", 5, time.Minute)
		require.NoError(t, err)
		assert.True(t, decision.Allowed)
		assert.Equal(t, 5, decision.Remaining)
	}
}

func TestRateLimitKey(t *testing.T) {
	assert.Equal(t, "rate_limit:1.2.3.4:login", RateLimitKey("1.2.3.4", "login"))
}
