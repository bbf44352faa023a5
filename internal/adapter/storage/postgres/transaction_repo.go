package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const (
	transactionColumns = `id, user_id, wallet_id, type, category, amount, balance_before, balance_after,
		status, reference, provider_reference, token, description, metadata, created_at, updated_at`

	referenceConstraint         = "transactions_reference_key"
	providerReferenceConstraint = "transactions_provider_reference_key"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Create inserts a new transaction within a database transaction.
// A reference or provider reference that already exists yields a
// DuplicateReference error.
func (r *TransactionRepo) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := tx.Exec(ctx, query,
		t.ID, t.UserID, t.WalletID, t.Type, t.Category,
		t.Amount, t.BalanceBefore, t.BalanceAfter, t.Status,
		t.Reference, t.ProviderReference, t.Token, t.Description, t.Metadata,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, referenceConstraint) || isUniqueViolation(err, providerReferenceConstraint) {
			return apperror.ErrDuplicateReference()
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID fetches a transaction by UUID.
func (r *TransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, id))
}

// GetByReference fetches a transaction by its ledger reference.
func (r *TransactionRepo) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE reference = $1`

	return r.scanTransaction(r.pool.QueryRow(ctx, query, reference))
}

// GetByProviderReferenceForUpdate locks the transaction carrying the payment
// provider's reference. This MUST be called within a transaction.
func (r *TransactionRepo) GetByProviderReferenceForUpdate(ctx context.Context, tx pgx.Tx, providerReference string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE provider_reference = $1 FOR UPDATE`

	return r.scanTransaction(tx.QueryRow(ctx, query, providerReference))
}

// Complete settles a pending transaction. Completed rows are never touched again.
func (r *TransactionRepo) Complete(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount, balanceBefore, balanceAfter decimal.Decimal) error {
	query := `UPDATE transactions
		SET amount = $1, balance_before = $2, balance_after = $3, status = $4, updated_at = NOW()
		WHERE id = $5 AND status = $6`

	tag, err := tx.Exec(ctx, query,
		amount, balanceBefore, balanceAfter, domain.TransactionStatusCompleted,
		id, domain.TransactionStatusPending,
	)
	if err != nil {
		return fmt.Errorf("complete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending transaction not found: %s", id)
	}
	return nil
}

// SetToken back-fills the fulfillment token once.
func (r *TransactionRepo) SetToken(ctx context.Context, id uuid.UUID, token string) (bool, error) {
	query := `UPDATE transactions SET token = $1, updated_at = NOW() WHERE id = $2 AND token IS NULL`

	tag, err := r.pool.Exec(ctx, query, token, id)
	if err != nil {
		return false, fmt.Errorf("set transaction token: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List fetches a user's transactions, newest first, with filtering and pagination.
func (r *TransactionRepo) List(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, fmt.Sprintf("user_id = $%d", argIdx))
	args = append(args, params.UserID)
	argIdx++

	if params.Type != nil {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argIdx))
		args = append(args, *params.Type)
		argIdx++
	}
	if params.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argIdx))
		args = append(args, *params.Category)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM transactions %s", where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	dataQuery := fmt.Sprintf(`SELECT %s FROM transactions %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		transactionColumns, where, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, params.Limit)
	for rows.Next() {
		t, err := r.scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate transaction rows: %w", err)
	}
	return txns, total, nil
}

// SumByCategory totals a user's transactions of one category and status.
func (r *TransactionRepo) SumByCategory(ctx context.Context, userID uuid.UUID, category domain.TransactionCategory, status domain.TransactionStatus) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE user_id = $1 AND category = $2 AND status = $3`

	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, userID, category, status).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum transactions by category: %w", err)
	}
	return sum, nil
}

// GetStats aggregates a user's completed transactions per category.
func (r *TransactionRepo) GetStats(ctx context.Context, userID uuid.UUID) ([]ports.CategoryStat, error) {
	query := `SELECT category, COUNT(*), COALESCE(SUM(amount), 0) FROM transactions
		WHERE user_id = $1 AND status = $2
		GROUP BY category ORDER BY category`

	rows, err := r.pool.Query(ctx, query, userID, domain.TransactionStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("get transaction stats: %w", err)
	}
	defer rows.Close()

	var stats []ports.CategoryStat
	for rows.Next() {
		var s ports.CategoryStat
		if err := rows.Scan(&s.Category, &s.Count, &s.Total); err != nil {
			return nil, fmt.Errorf("scan transaction stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction stats: %w", err)
	}
	return stats, nil
}

// scanTransaction is a helper to scan a single row into a Transaction.
func (r *TransactionRepo) scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	t := &domain.Transaction{}
	err := row.Scan(
		&t.ID, &t.UserID, &t.WalletID, &t.Type, &t.Category,
		&t.Amount, &t.BalanceBefore, &t.BalanceAfter, &t.Status,
		&t.Reference, &t.ProviderReference, &t.Token, &t.Description, &t.Metadata,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return t, nil
}
