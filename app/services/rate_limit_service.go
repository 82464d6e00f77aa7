package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/khabarhub/newsads/utils"

	"github.com/redis/go-redis/v9"
)

// ErrRateLimiterUnavailable is returned when no redis backend is configured
// and the limiter is set to fail closed
var ErrRateLimiterUnavailable = errors.New("rate limiter backend unavailable")

// RateLimitDecision is the outcome of a single rate limit check
type RateLimitDecision struct {
	Allowed      bool
	Limit        int
	Remaining    int
	ResetSeconds int
}

// RateLimitService enforces sliding-window request limits per client key
type RateLimitService interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitDecision, error)
}

// RateLimitServiceImpl keeps one redis sorted set per key, scored by request
// timestamp. Old members are trimmed on every check, so the cardinality of
// the set is the number of requests inside the current window.
type RateLimitServiceImpl struct {
	rc       *redis.Client
	enabled  bool
	failOpen bool
	now      func() time.Time
}

// NewRateLimitService creates a new rate limit service. When disabled, every
// check passes without touching redis. With failOpen set, redis errors let
// the request through instead of returning 429s during a cache outage.
func NewRateLimitService(rc *redis.Client, enabled, failOpen bool) RateLimitService {
	return &RateLimitServiceImpl{
		rc:       rc,
		enabled:  enabled,
		failOpen: failOpen,
		now:      utils.UTCNow,
	}
}

// Allow records a request attempt under key and reports whether it is within
// the limit for the window
func (s *RateLimitServiceImpl) Allow(ctx context.Context, key string, limit int, window time.Duration) (*RateLimitDecision, error) {
	if !s.enabled {
		return &RateLimitDecision{
			Allowed:      true,
			Limit:        limit,
			Remaining:    limit,
			ResetSeconds: int(window.Seconds()),
		}, nil
	}
	// A disabled cache leaves no backend to count against; apply the same
	// fail-open policy as a redis outage instead of dereferencing nil.
	if s.rc == nil {
		return s.onRedisError(limit, window, ErrRateLimiterUnavailable)
	}

	now := s.now()
	windowStart := now.Add(-window)

	pipe := s.rc.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	oldestCmd := pipe.ZRangeWithScores(ctx, key, 0, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return s.onRedisError(limit, window, err)
	}

	count := int(countCmd.Val())
	if count >= limit {
		return &RateLimitDecision{
			Allowed:      false,
			Limit:        limit,
			Remaining:    0,
			ResetSeconds: s.resetSeconds(oldestCmd.Val(), now, window),
		}, nil
	}

	pipe = s.rc.Pipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	pipe.Expire(ctx, key, window+utils.RateLimitTTLMargin)
	if _, err := pipe.Exec(ctx); err != nil {
		return s.onRedisError(limit, window, err)
	}

	return &RateLimitDecision{
		Allowed:      true,
		Limit:        limit,
		Remaining:    limit - count - 1,
		ResetSeconds: int(window.Seconds()),
	}, nil
}

// resetSeconds estimates when the oldest request in the window falls out
func (s *RateLimitServiceImpl) resetSeconds(oldest []redis.Z, now time.Time, window time.Duration) int {
	if len(oldest) == 0 {
		return int(window.Seconds())
	}

	oldestAt := time.Unix(0, int64(oldest[0].Score))
	reset := oldestAt.Add(window).Sub(now)
	if reset < time.Second {
		return 1
	}
	return int(reset.Seconds())
}

func (s *RateLimitServiceImpl) onRedisError(limit int, window time.Duration, err error) (*RateLimitDecision, error) {
	if s.failOpen {
		return &RateLimitDecision{
			Allowed:      true,
			Limit:        limit,
			Remaining:    limit,
			ResetSeconds: int(window.Seconds()),
		}, nil
	}
	return nil, err
}

// RateLimitKey builds the redis key for a client and route bucket
func RateLimitKey(clientIP, bucket string) string {
	return utils.RateLimitKeyPrefix + clientIP + ":" + bucket
}
