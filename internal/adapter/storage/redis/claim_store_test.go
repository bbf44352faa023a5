package redis

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClaimStore(t *testing.T) (*ClaimStore, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewClaimStore(client), s
}

func TestClaimStore_Claim_NewKey(t *testing.T) {
	store, _ := newTestClaimStore(t)

	ok, err := store.Claim(context.Background(), "user-1:data_purchase:REQ-1", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "first claim should succeed")
}

func TestClaimStore_Claim_AlreadyHeld(t *testing.T) {
	store, _ := newTestClaimStore(t)
	ctx := context.Background()

	ok, err := store.Claim(ctx, "user-1:data_purchase:REQ-1", 10*time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, "user-1:data_purchase:REQ-1", 10*time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second claim on the same key should fail")
}

func TestClaimStore_Claim_DifferentUsers(t *testing.T) {
	store, _ := newTestClaimStore(t)
	ctx := context.Background()

	ok1, err := store.Claim(ctx, "user-A:airtime_purchase:REQ-1", time.Minute)
	require.NoError(t, err)
	ok2, err := store.Claim(ctx, "user-B:airtime_purchase:REQ-1", time.Minute)
	require.NoError(t, err)

	assert.True(t, ok1)
	assert.True(t, ok2, "same reference for a different user is a different key")
}

func TestClaimStore_Claim_Expired(t *testing.T) {
	store, s := newTestClaimStore(t)
	ctx := context.Background()

	ok, err := store.Claim(ctx, "key", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	s.FastForward(2 * time.Second)

	ok, err = store.Claim(ctx, "key", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired claim should be claimable again")
}

func TestClaimStore_Release(t *testing.T) {
	store, s := newTestClaimStore(t)
	ctx := context.Background()

	_, err := store.Claim(ctx, "key", time.Minute)
	require.NoError(t, err)
	assert.True(t, s.Exists("settlement:claim:key"))

	require.NoError(t, store.Release(ctx, "key"))
	assert.False(t, s.Exists("settlement:claim:key"))

	ok, err := store.Claim(ctx, "key", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClaimStore_Claim_Concurrent(t *testing.T) {
	store, _ := newTestClaimStore(t)
	ctx := context.Background()

	var won atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Claim(ctx, "contended", time.Minute)
			if err == nil && ok {
				won.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), won.Load())
}
