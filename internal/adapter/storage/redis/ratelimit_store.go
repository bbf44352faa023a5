package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Quota caps how many requests one caller may make per fixed window.
type Quota struct {
	Limit  int64
	Window time.Duration
}

// Usage is a caller's standing in the current window after a hit.
type Usage struct {
	Count   int64
	Quota   Quota
	ResetAt time.Time
}

// Allowed reports whether the hit fits the quota.
func (u Usage) Allowed() bool {
	return u.Count <= u.Quota.Limit
}

func (u Usage) Remaining() int64 {
	return max(u.Quota.Limit-u.Count, 0)
}

// RetryAfter is the whole-second wait until the window rolls over, at least 1s.
func (u Usage) RetryAfter(now time.Time) time.Duration {
	wait := u.ResetAt.Sub(now).Truncate(time.Second)
	return max(wait, time.Second)
}

// RateLimitStore keeps fixed-window request counters in Redis. Each window
// gets its own key so a new window always starts from zero.
type RateLimitStore struct {
	client *goredis.Client
	prefix string
}

func NewRateLimitStore(client *goredis.Client) *RateLimitStore {
	return &RateLimitStore{client: client, prefix: "ratelimit:"}
}

// Hit counts one request for key against q.
func (s *RateLimitStore) Hit(ctx context.Context, key string, q Quota) (Usage, error) {
	window := max(q.Window.Truncate(time.Second), time.Second)
	start := time.Now().Truncate(window)
	reset := start.Add(window)
	redisKey := s.prefix + key + ":" + strconv.FormatInt(start.Unix(), 10)

	// INCR and the expiry go out together so a counter can never be left without a TTL.
	var incr *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		incr = p.Incr(ctx, redisKey)
		p.ExpireAt(ctx, redisKey, reset.Add(time.Second))
		return nil
	})
	if err != nil {
		return Usage{}, fmt.Errorf("redis rate limit hit: %w", err)
	}

	return Usage{Count: incr.Val(), Quota: q, ResetAt: reset}, nil
}
