package ports

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

import (
	"context"

	"vtu-billing/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletService is the only writer of wallet balances.
type WalletService interface {
	// GetBalance returns the user's wallet, opening an empty one if needed.
	GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error)
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, category domain.TransactionCategory, metadata domain.Metadata) (*LedgerEntry, error)
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, category domain.TransactionCategory, metadata domain.Metadata) (*LedgerEntry, error)
	GetTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*domain.Transaction, error)
	// GetTransactionByReference looks up one of the user's transactions by its ledger reference.
	GetTransactionByReference(ctx context.Context, userID uuid.UUID, reference string) (*domain.Transaction, error)
	AttachToken(ctx context.Context, transactionID uuid.UUID, token string) error
	RecordPendingFunding(ctx context.Context, req PendingFunding) (*domain.Transaction, error)
	SettleFunding(ctx context.Context, providerReference string, amount decimal.Decimal) (*FundingSettlement, error)
}

// LedgerEntry is the outcome of one balance mutation.
type LedgerEntry struct {
	Wallet      *domain.Wallet      `json:"wallet"`
	Transaction *domain.Transaction `json:"transaction"`
}

// PendingFunding describes a checkout awaiting gateway confirmation.
type PendingFunding struct {
	UserID            uuid.UUID
	Amount            decimal.Decimal
	Reference         string
	ProviderReference string
	Metadata          domain.Metadata
}

// FundingSettlement is the result of applying a confirmed payment.
type FundingSettlement struct {
	Transaction      *domain.Transaction
	Wallet           *domain.Wallet
	AlreadyProcessed bool
}

// SettlementService runs the debit, fulfil, refund-or-reward workflow per product.
type SettlementService interface {
	PurchaseData(ctx context.Context, req domain.DataPurchase) (*domain.PurchaseResult, error)
	PurchaseAirtime(ctx context.Context, req domain.AirtimePurchase) (*domain.PurchaseResult, error)
	PurchaseElectricity(ctx context.Context, req domain.ElectricityPurchase) (*domain.PurchaseResult, error)
	PurchaseCable(ctx context.Context, req domain.CablePurchase) (*domain.PurchaseResult, error)
	VerifyMeter(ctx context.Context, req domain.MeterVerification) (*domain.ProviderResponse, error)
	ListPlans(ctx context.Context, network string) (domain.Catalog, error)
}

// ReferralService credits referrers. Award never fails the caller.
type ReferralService interface {
	Award(ctx context.Context, purchaserID uuid.UUID, purchaseAmount decimal.Decimal, purchaseType string, details domain.Metadata)
	GetStats(ctx context.Context, userID uuid.UUID) (*domain.ReferralStats, error)
}

// FundingService tops wallets up through the payment gateway.
type FundingService interface {
	Initialize(ctx context.Context, req FundingRequest) (*PaymentSession, error)
	Verify(ctx context.Context, reference string) (map[string]any, error)
	HandleEvent(ctx context.Context, event PaymentEvent) (string, error)
}

// FundingRequest holds validated input for a wallet top-up.
type FundingRequest struct {
	UserID uuid.UUID
	Email  string
	Amount decimal.Decimal
}

// PaymentEvent is a gateway webhook reduced to the fields the ledger needs.
type PaymentEvent struct {
	Event      string
	Reference  string
	AmountKobo int64
}

// ReportingService serves wallet history and summaries.
type ReportingService interface {
	ListTransactions(ctx context.Context, params TransactionListParams) ([]domain.Transaction, int64, error)
	GetSummary(ctx context.Context, userID uuid.UUID) (*WalletSummary, error)
}

// WalletSummary is the balance plus per-category completed totals.
type WalletSummary struct {
	Balance    decimal.Decimal `json:"balance"`
	Currency   string          `json:"currency"`
	Categories []CategoryStat  `json:"categories"`
}

// TokenService validates bearer tokens issued by the auth service.
type TokenService interface {
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}
