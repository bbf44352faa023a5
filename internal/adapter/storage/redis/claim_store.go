package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// ClaimStore implements ports.SettlementClaimStore using Redis SET NX.
// A claim marks a settlement key as in flight so a concurrent replay of the
// same purchase cannot debit twice.
type ClaimStore struct {
	client *goredis.Client
	prefix string
}

// NewClaimStore creates a new Redis-backed claim store.
func NewClaimStore(client *goredis.Client) *ClaimStore {
	return &ClaimStore{
		client: client,
		prefix: "settlement:claim:",
	}
}

// Claim atomically takes the key if nobody holds it.
// Returns true if the caller now owns the claim, false if it was already taken.
func (s *ClaimStore) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.prefix+key, 1, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis settlement claim: %w", err)
	}
	return result == "OK", nil
}

// Release drops a claim so the key can be settled again.
func (s *ClaimStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis settlement release: %w", err)
	}
	return nil
}
