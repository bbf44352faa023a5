package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vtu-billing/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const (
	// created_at falls back to the server clock when the caller leaves it zero.
	insertIdempotencyLog = `INSERT INTO idempotency_logs (key, transaction_id, response_json, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
		ON CONFLICT (key) DO NOTHING`

	selectIdempotencyLog = `SELECT key, transaction_id, response_json, created_at
		FROM idempotency_logs
		WHERE key = $1`
)

var errEmptySettlementKey = errors.New("settlement key is empty")

// IdempotencyRepo is the durable record of settled purchases. Rows are never
// updated: the first settlement stored for a key is final.
type IdempotencyRepo struct {
	pool Pool
}

func NewIdempotencyRepo(pool Pool) *IdempotencyRepo {
	return &IdempotencyRepo{pool: pool}
}

func (r *IdempotencyRepo) Create(ctx context.Context, entry *domain.IdempotencyLog) error {
	if entry.Key == "" {
		return errEmptySettlementKey
	}
	var createdAt *time.Time
	if !entry.CreatedAt.IsZero() {
		createdAt = &entry.CreatedAt
	}

	if _, err := r.pool.Exec(ctx, insertIdempotencyLog, entry.Key, entry.TransactionID, entry.ResponseJSON, createdAt); err != nil {
		return fmt.Errorf("insert idempotency log %q: %w", entry.Key, err)
	}
	return nil
}

// Get returns nil, nil when key was never settled.
func (r *IdempotencyRepo) Get(ctx context.Context, key string) (*domain.IdempotencyLog, error) {
	var entry domain.IdempotencyLog
	err := r.pool.QueryRow(ctx, selectIdempotencyLog, key).
		Scan(&entry.Key, &entry.TransactionID, &entry.ResponseJSON, &entry.CreatedAt)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("get idempotency log %q: %w", key, err)
	}
	return &entry, nil
}
