package memory

import (
	"context"

	"vtu-billing/internal/core/domain"
)

// IdempotencyRepo implements ports.IdempotencyRepository.
type IdempotencyRepo struct {
	store *Store
}

// NewIdempotencyRepo creates a new IdempotencyRepo.
func NewIdempotencyRepo(store *Store) *IdempotencyRepo {
	return &IdempotencyRepo{store: store}
}

// Create stores the log. The first writer for a key wins.
func (r *IdempotencyRepo) Create(ctx context.Context, log *domain.IdempotencyLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.idempotency[log.Key]; ok {
		return nil
	}
	cp := *log
	r.store.idempotency[log.Key] = &cp
	return nil
}

func (r *IdempotencyRepo) Get(ctx context.Context, key string) (*domain.IdempotencyLog, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	l, ok := r.store.idempotency[key]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}
