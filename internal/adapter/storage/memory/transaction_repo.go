package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	store *Store
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(store *Store) *TransactionRepo {
	return &TransactionRepo{store: store}
}

// Create stages an insert. The reference and provider reference are
// reserved immediately so a concurrent insert of either fails like a
// unique index would.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	mt, err := asMemTx(r.store, tx)
	if err != nil {
		return err
	}

	var keys []string
	r.store.mu.Lock()
	if t.Reference != nil {
		ref := *t.Reference
		_, committed := r.store.references[ref]
		_, pending := r.store.reserved[referenceKey(ref)]
		if committed || pending {
			r.store.mu.Unlock()
			return apperror.ErrDuplicateReference()
		}
		keys = append(keys, referenceKey(ref))
	}
	if t.ProviderReference != nil {
		ref := *t.ProviderReference
		_, committed := r.store.providerRefs[ref]
		_, pending := r.store.reserved[providerKey(ref)]
		if committed || pending {
			r.store.mu.Unlock()
			return apperror.ErrDuplicateReference()
		}
		keys = append(keys, providerKey(ref))
	}
	for _, k := range keys {
		r.store.reserved[k] = struct{}{}
	}
	r.store.mu.Unlock()

	if len(keys) > 0 {
		mt.mu.Lock()
		mt.reserved = append(mt.reserved, keys...)
		mt.mu.Unlock()
	}

	row := cloneTransaction(t)
	mt.stage(func(s *Store) {
		s.nextSeq++
		s.seq[row.ID] = s.nextSeq
		s.transactions[row.ID] = row
		if row.Reference != nil {
			s.references[*row.Reference] = row.ID
		}
		if row.ProviderReference != nil {
			s.providerRefs[*row.ProviderReference] = row.ID
		}
	})
	return nil
}

// Ledger and provider references are unique independently, so their
// reservations live in separate key spaces.
func referenceKey(ref string) string { return "ref:" + ref }
func providerKey(ref string) string  { return "provider:" + ref }

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	t, ok := r.store.transactions[id]
	if !ok {
		return nil, nil
	}
	return cloneTransaction(t), nil
}

// GetByReference fetches a transaction by its ledger reference.
func (r *TransactionRepo) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	r.store.mu.RLock()
	id, ok := r.store.references[reference]
	r.store.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// GetByProviderReferenceForUpdate locks the transaction carrying the payment
// provider's reference until tx ends.
func (r *TransactionRepo) GetByProviderReferenceForUpdate(ctx context.Context, tx pgx.Tx, providerReference string) (*domain.Transaction, error) {
	mt, err := asMemTx(r.store, tx)
	if err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	id, ok := r.store.providerRefs[providerReference]
	r.store.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if err := mt.lock(ctx, "transaction:"+id.String()); err != nil {
		return nil, fmt.Errorf("get transaction for update: %w", err)
	}
	return r.GetByID(ctx, id)
}

// Complete stages the settlement of a pending transaction.
func (r *TransactionRepo) Complete(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount, balanceBefore, balanceAfter decimal.Decimal) error {
	mt, err := asMemTx(r.store, tx)
	if err != nil {
		return err
	}

	r.store.mu.RLock()
	t, ok := r.store.transactions[id]
	pending := ok && t.Status == domain.TransactionStatusPending
	r.store.mu.RUnlock()
	if !pending {
		return fmt.Errorf("pending transaction not found: %s", id)
	}

	mt.stage(func(s *Store) {
		row := s.transactions[id]
		row.Amount = amount
		row.BalanceBefore = balanceBefore
		row.BalanceAfter = balanceAfter
		row.Status = domain.TransactionStatusCompleted
		row.UpdatedAt = time.Now().UTC()
	})
	return nil
}

// SetToken back-fills the fulfillment token once.
func (r *TransactionRepo) SetToken(ctx context.Context, id uuid.UUID, token string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.transactions[id]
	if !ok || t.Token != nil {
		return false, nil
	}
	t.Token = &token
	t.UpdatedAt = time.Now().UTC()
	return true, nil
}

// List returns a user's transactions, newest first.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*domain.Transaction
	for _, t := range r.store.transactions {
		if t.UserID != params.UserID {
			continue
		}
		if params.Type != nil && t.Type != *params.Type {
			continue
		}
		if params.Category != nil && t.Category != *params.Category {
			continue
		}
		if params.Status != nil && t.Status != *params.Status {
			continue
		}
		matched = append(matched, t)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return r.store.seq[matched[i].ID] > r.store.seq[matched[j].ID]
	})

	total := int64(len(matched))
	if params.Offset >= len(matched) {
		return []domain.Transaction{}, total, nil
	}
	end := len(matched)
	if params.Limit > 0 && params.Offset+params.Limit < end {
		end = params.Offset + params.Limit
	}

	page := make([]domain.Transaction, 0, end-params.Offset)
	for _, t := range matched[params.Offset:end] {
		page = append(page, *cloneTransaction(t))
	}
	return page, total, nil
}

// SumByCategory totals a user's transactions of one category and status.
func (r *TransactionRepo) SumByCategory(ctx context.Context, userID uuid.UUID, category domain.TransactionCategory, status domain.TransactionStatus) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	sum := decimal.Zero
	for _, t := range r.store.transactions {
		if t.UserID == userID && t.Category == category && t.Status == status {
			sum = sum.Add(t.Amount)
		}
	}
	return sum, nil
}

// GetStats aggregates a user's completed transactions per category.
func (r *TransactionRepo) GetStats(ctx context.Context, userID uuid.UUID) ([]ports.CategoryStat, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byCategory := make(map[domain.TransactionCategory]*ports.CategoryStat)
	for _, t := range r.store.transactions {
		if t.UserID != userID || t.Status != domain.TransactionStatusCompleted {
			continue
		}
		stat, ok := byCategory[t.Category]
		if !ok {
			stat = &ports.CategoryStat{Category: t.Category, Total: decimal.Zero}
			byCategory[t.Category] = stat
		}
		stat.Count++
		stat.Total = stat.Total.Add(t.Amount)
	}

	stats := make([]ports.CategoryStat, 0, len(byCategory))
	for _, s := range byCategory {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Category < stats[j].Category })
	return stats, nil
}
