package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports/mocks"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testCatalog() domain.Catalog {
	return domain.Catalog{
		"MTN": {
			{ID: "1", Name: "1GB", Network: "MTN", WalletPrice: "300", Validity: "30 days"},
		},
	}
}

func TestPlanCache_ReadThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockCatalogProvider(ctrl)
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewPlanCache(client, inner, 10*time.Minute, zerolog.Nop())
	ctx := context.Background()

	inner.EXPECT().Plans(gomock.Any()).Return(testCatalog(), nil).Times(1)

	first, err := cache.Plans(ctx)
	require.NoError(t, err)
	second, err := cache.Plans(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, s.Exists(planCacheKey))
	assert.Equal(t, 10*time.Minute, s.TTL(planCacheKey))
}

func TestPlanCache_ExpiredEntryRefetches(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockCatalogProvider(ctrl)
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewPlanCache(client, inner, time.Minute, zerolog.Nop())

	inner.EXPECT().Plans(gomock.Any()).Return(testCatalog(), nil).Times(2)

	_, err := cache.Plans(context.Background())
	require.NoError(t, err)
	s.FastForward(2 * time.Minute)
	_, err = cache.Plans(context.Background())
	require.NoError(t, err)
}

func TestPlanCache_RedisDownFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockCatalogProvider(ctrl)
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr(), MaxRetries: -1})
	cache := NewPlanCache(client, inner, time.Minute, zerolog.Nop())
	s.Close()

	inner.EXPECT().Plans(gomock.Any()).Return(testCatalog(), nil)

	catalog, err := cache.Plans(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog["MTN"], 1)
}

func TestPlanCache_ProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	inner := mocks.NewMockCatalogProvider(ctrl)
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewPlanCache(client, inner, time.Minute, zerolog.Nop())

	inner.EXPECT().Plans(gomock.Any()).Return(nil, errors.New("upstream down"))

	_, err := cache.Plans(context.Background())
	assert.Error(t, err)
	assert.False(t, s.Exists(planCacheKey))
}
