package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotencyCache(t *testing.T) (*IdempotencyCache, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewIdempotencyCache(client), s
}

func TestIdempotencyCache_SetAndGet(t *testing.T) {
	cache, s := newIdempotencyCache(t)
	ctx := context.Background()

	key := "user-123:data_purchase:REQ-001"
	value := []byte(`{"kind":"data","amount":"500"}`)

	result, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, result)

	require.NoError(t, cache.Set(ctx, key, value, 24*time.Hour))

	result, err = cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, value, result)
	assert.Equal(t, 24*time.Hour, s.TTL("settlement:result:"+key))
}

func TestIdempotencyCache_FirstResultWins(t *testing.T) {
	cache, _ := newIdempotencyCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte(`{"first":true}`), time.Hour))
	require.NoError(t, cache.Set(ctx, "k", []byte(`{"first":false}`), time.Hour))

	result, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"first":true}`, string(result))
}

func TestIdempotencyCache_Expiry(t *testing.T) {
	cache, s := newIdempotencyCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "expiring-key", []byte("data"), time.Second))
	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, "expiring-key")
	require.NoError(t, err)
	assert.Nil(t, result)

	// Once expired the key can be written again.
	require.NoError(t, cache.Set(ctx, "expiring-key", []byte("fresh"), time.Second))
	result, err = cache.Get(ctx, "expiring-key")
	require.NoError(t, err)
	assert.Equal(t, []byte("fresh"), result)
}

func TestIdempotencyCache_ConnectionError(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr(), MaxRetries: -1})
	cache := NewIdempotencyCache(client)
	s.Close()

	_, err := cache.Get(context.Background(), "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis idempotency get")

	err = cache.Set(context.Background(), "key", []byte("v"), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis idempotency set")
}
