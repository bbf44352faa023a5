package ports

//go:generate mockgen -source=repositories.go -destination=mocks/repositories.go -package=mocks

import (
	"context"

	"vtu-billing/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepository defines persistence operations for wallets.
// Methods accepting pgx.Tx run inside a transaction and hold the wallet row lock until it ends.
type WalletRepository interface {
	// Create inserts the wallet unless the user already has one.
	Create(ctx context.Context, wallet *domain.Wallet) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error
}

// TransactionRepository defines persistence operations for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx pgx.Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	GetByProviderReferenceForUpdate(ctx context.Context, tx pgx.Tx, providerReference string) (*domain.Transaction, error)
	// Complete settles a pending transaction with its final amount and balances.
	Complete(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount, balanceBefore, balanceAfter decimal.Decimal) error
	// SetToken back-fills the fulfillment token. Returns false if a token was already set.
	SetToken(ctx context.Context, id uuid.UUID, token string) (bool, error)
	// Reporting queries
	List(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	SumByCategory(ctx context.Context, userID uuid.UUID, category domain.TransactionCategory, status domain.TransactionStatus) (decimal.Decimal, error)
	GetStats(ctx context.Context, userID uuid.UUID) ([]CategoryStat, error)
}

// TransactionListParams holds filter + pagination for listing a user's transactions.
type TransactionListParams struct {
	UserID   uuid.UUID
	Type     *domain.TransactionType
	Category *domain.TransactionCategory
	Status   *domain.TransactionStatus
	Limit    int
	Offset   int
}

// CategoryStat aggregates completed transactions of one category.
type CategoryStat struct {
	Category domain.TransactionCategory `json:"category"`
	Count    int64                      `json:"count"`
	Total    decimal.Decimal            `json:"total"`
}

// UserRepository reads the account records owned by the user service.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	CountReferredBy(ctx context.Context, referrerID uuid.UUID) (int64, error)
}

// IdempotencyRepository is the durable replay log behind the Redis cache.
type IdempotencyRepository interface {
	// Create stores the log unless the key already exists.
	Create(ctx context.Context, log *domain.IdempotencyLog) error
	Get(ctx context.Context, key string) (*domain.IdempotencyLog, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
