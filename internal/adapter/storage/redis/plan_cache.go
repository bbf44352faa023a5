package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const planCacheKey = "catalog:plans"

// PlanCache decorates a ports.CatalogProvider with a Redis read-through cache.
// Redis failures fall through to the provider.
type PlanCache struct {
	client *goredis.Client
	next   ports.CatalogProvider
	ttl    time.Duration
	log    zerolog.Logger
}

// NewPlanCache wraps next with a cache entry that lives for ttl.
func NewPlanCache(client *goredis.Client, next ports.CatalogProvider, ttl time.Duration, log zerolog.Logger) *PlanCache {
	return &PlanCache{client: client, next: next, ttl: ttl, log: log}
}

// Plans returns the cached catalog or fetches and caches a fresh one.
func (c *PlanCache) Plans(ctx context.Context) (domain.Catalog, error) {
	raw, err := c.client.Get(ctx, planCacheKey).Bytes()
	switch {
	case err == nil:
		var catalog domain.Catalog
		if jsonErr := json.Unmarshal(raw, &catalog); jsonErr == nil {
			return catalog, nil
		}
		c.log.Warn().Msg("Discarding undecodable cached plan catalog")
	case !errors.Is(err, goredis.Nil):
		c.log.Warn().Err(err).Msg("Plan cache read failed")
	}

	catalog, err := c.next.Plans(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(catalog); err == nil {
		if err := c.client.Set(ctx, planCacheKey, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Msg("Plan cache write failed")
		}
	}
	return catalog, nil
}
