package postgres

import (
	"context"
	"errors"
	"fmt"
)

const schemaCheck = `SELECT to_regclass('public.wallets') IS NOT NULL
	AND to_regclass('public.transactions') IS NOT NULL
	AND to_regclass('public.idempotency_logs') IS NOT NULL`

var errSchemaMissing = errors.New("ledger tables missing, apply migrations")

// HealthCheck reports the ledger database as healthy only when it answers
// and the migrated tables exist.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

func (h *HealthCheck) Ping(ctx context.Context) error {
	var migrated bool
	if err := h.pool.QueryRow(ctx, schemaCheck).Scan(&migrated); err != nil {
		return fmt.Errorf("postgres health check: %w", err)
	}
	if !migrated {
		return errSchemaMissing
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "postgresql"
}
