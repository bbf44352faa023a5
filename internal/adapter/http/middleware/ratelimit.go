package middleware

import (
	"fmt"
	"strconv"
	"time"

	redisStore "vtu-billing/internal/adapter/storage/redis"
	"vtu-billing/pkg/apperror"
	"vtu-billing/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// DefaultQuotas returns the per-group limits applied by the router.
func DefaultQuotas() map[string]redisStore.Quota {
	return map[string]redisStore.Quota{
		"purchases": {Limit: 30, Window: time.Minute},
		"funding":   {Limit: 20, Window: time.Minute},
		"wallet":    {Limit: 60, Window: time.Minute},
	}
}

// Limiter hands out per-group rate limiting middleware.
type Limiter struct {
	store  *redisStore.RateLimitStore
	quotas map[string]redisStore.Quota
	log    zerolog.Logger
}

// NewLimiter creates a Limiter. A nil store disables limiting.
func NewLimiter(store *redisStore.RateLimitStore, quotas map[string]redisStore.Quota, log zerolog.Logger) *Limiter {
	return &Limiter{store: store, quotas: quotas, log: log}
}

// For returns the middleware for group. Groups without a quota pass through.
func (l *Limiter) For(group string) gin.HandlerFunc {
	quota, ok := l.quotas[group]
	if l.store == nil || !ok {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		key := callerKey(c) + ":" + group

		usage, err := l.store.Hit(c.Request.Context(), key, quota)
		if err != nil {
			// Redis trouble must not take purchases down with it.
			l.log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request")
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.FormatInt(quota.Limit, 10))
		h.Set("X-RateLimit-Remaining", strconv.FormatInt(usage.Remaining(), 10))
		h.Set("X-RateLimit-Reset", strconv.FormatInt(usage.ResetAt.Unix(), 10))

		if !usage.Allowed() {
			retry := usage.RetryAfter(time.Now())
			h.Set("Retry-After", strconv.Itoa(int(retry.Seconds())))
			l.log.Info().
				Str("group", group).
				Str("caller", callerKey(c)).
				Int64("count", usage.Count).
				Msg("rate limit exceeded")
			response.Abort(c, apperror.ErrRateLimitExceeded())
			return
		}

		c.Next()
	}
}

// callerKey keys authenticated callers by user, everyone else by IP.
func callerKey(c *gin.Context) string {
	if uid, exists := c.Get(CtxUserID); exists {
		return fmt.Sprintf("user:%v", uid)
	}
	return "ip:" + c.ClientIP()
}
