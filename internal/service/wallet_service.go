package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// WalletServiceImpl implements ports.WalletService.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	txRepo     ports.TransactionRepository
	transactor ports.DBTransactor
	publisher  ports.LedgerEventPublisher
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl. publisher may be nil.
func NewWalletService(
	walletRepo ports.WalletRepository,
	txRepo ports.TransactionRepository,
	transactor ports.DBTransactor,
	publisher ports.LedgerEventPublisher,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		txRepo:     txRepo,
		transactor: transactor,
		publisher:  publisher,
		log:        log,
	}
}

// GetBalance returns the user's wallet, opening an empty NGN wallet on first use.
func (s *WalletServiceImpl) GetBalance(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet != nil {
		return wallet, nil
	}

	// Insert-if-absent then re-read, so two first requests end up on the same row.
	if err := s.walletRepo.Create(ctx, domain.NewWallet(userID)); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create wallet: %w", err))
	}
	wallet, err = s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	s.log.Info().Str("user_id", userID.String()).Str("wallet_id", wallet.ID.String()).Msg("wallet opened")
	return wallet, nil
}

// Credit adds amount to the wallet and appends a completed credit transaction.
func (s *WalletServiceImpl) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, category domain.TransactionCategory, metadata domain.Metadata) (*ports.LedgerEntry, error) {
	return s.apply(ctx, userID, domain.TransactionTypeCredit, amount, category, metadata)
}

// Debit removes amount from the wallet. The balance never goes negative.
func (s *WalletServiceImpl) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal, category domain.TransactionCategory, metadata domain.Metadata) (*ports.LedgerEntry, error) {
	return s.apply(ctx, userID, domain.TransactionTypeDebit, amount, category, metadata)
}

func (s *WalletServiceImpl) apply(
	ctx context.Context,
	userID uuid.UUID,
	txType domain.TransactionType,
	amount decimal.Decimal,
	category domain.TransactionCategory,
	metadata domain.Metadata,
) (*ports.LedgerEntry, error) {
	if !domain.ValidAmount(amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// Lock & get wallet
	wallet, err := s.walletRepo.GetByUserIDForUpdate(ctx, dbTx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	if txType == domain.TransactionTypeDebit && !wallet.CanDebit(amount) {
		return nil, apperror.ErrInsufficientBalance()
	}

	before := wallet.Balance
	after := txType.Apply(before, amount)
	now := time.Now().UTC()

	description := "Wallet credited"
	if txType == domain.TransactionTypeDebit {
		description = "Wallet debited"
	}
	reference := domain.NewReference(txType.ReferencePrefix())
	txn := &domain.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		WalletID:      wallet.ID,
		Type:          txType,
		Category:      category,
		Amount:        amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Status:        domain.TransactionStatusCompleted,
		Reference:     &reference,
		Description:   metadata.Description(description),
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if token, ok := metadata.String("token"); ok {
		txn.Token = &token
	}

	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, after); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, asAppError(err, "create transaction")
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	wallet.Balance = after
	wallet.UpdatedAt = now
	s.publish(ctx, txn)

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", userID.String()).
		Str("type", string(txType)).
		Str("category", string(category)).
		Str("amount", amount.String()).
		Str("balance_after", after.String()).
		Msg("wallet updated")

	return &ports.LedgerEntry{Wallet: wallet, Transaction: txn}, nil
}

// GetTransaction returns one of the caller's own transactions.
func (s *WalletServiceImpl) GetTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*domain.Transaction, error) {
	txn, err := s.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get transaction: %w", err))
	}
	if txn == nil || txn.UserID != userID {
		return nil, apperror.ErrNotFound("transaction")
	}
	return txn, nil
}

// GetTransactionByReference returns the caller's transaction with the given
// ledger reference. Another user's reference reads as not found.
func (s *WalletServiceImpl) GetTransactionByReference(ctx context.Context, userID uuid.UUID, reference string) (*domain.Transaction, error) {
	if reference == "" {
		return nil, apperror.Validation("reference is required")
	}
	txn, err := s.txRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get transaction by reference: %w", err))
	}
	if txn == nil || txn.UserID != userID {
		return nil, apperror.ErrNotFound("transaction")
	}
	return txn, nil
}

// AttachToken back-fills a vended token onto an existing transaction.
// Setting the same transaction's token twice is a no-op.
func (s *WalletServiceImpl) AttachToken(ctx context.Context, transactionID uuid.UUID, token string) error {
	if token == "" {
		return nil
	}
	set, err := s.txRepo.SetToken(ctx, transactionID, token)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("set token: %w", err))
	}
	if !set {
		s.log.Warn().Str("tx_id", transactionID.String()).Msg("token already attached, keeping the first one")
	}
	return nil
}

// RecordPendingFunding writes a pending funding credit. The balance does not move
// until SettleFunding confirms the payment.
func (s *WalletServiceImpl) RecordPendingFunding(ctx context.Context, req ports.PendingFunding) (*domain.Transaction, error) {
	if !domain.ValidAmount(req.Amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	wallet, err := s.walletRepo.GetByUserIDForUpdate(ctx, dbTx, req.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	now := time.Now().UTC()
	reference := req.Reference
	providerReference := req.ProviderReference
	if providerReference == "" {
		providerReference = reference
	}
	txn := &domain.Transaction{
		ID:                uuid.New(),
		UserID:            req.UserID,
		WalletID:          wallet.ID,
		Type:              domain.TransactionTypeCredit,
		Category:          domain.CategoryFunding,
		Amount:            req.Amount,
		BalanceBefore:     wallet.Balance,
		BalanceAfter:      wallet.Balance,
		Status:            domain.TransactionStatusPending,
		Reference:         &reference,
		ProviderReference: &providerReference,
		Description:       req.Metadata.Description("Wallet funding"),
		Metadata:          req.Metadata,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.txRepo.Create(ctx, dbTx, txn); err != nil {
		return nil, asAppError(err, "create transaction")
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("reference", reference).
		Str("amount", req.Amount.String()).
		Msg("funding pending")
	return txn, nil
}

// SettleFunding credits a confirmed payment exactly once. A replayed confirmation
// returns the settled transaction with AlreadyProcessed set.
func (s *WalletServiceImpl) SettleFunding(ctx context.Context, providerReference string, amount decimal.Decimal) (*ports.FundingSettlement, error) {
	if !domain.ValidAmount(amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	// The transaction row lock serializes duplicate webhook deliveries.
	txn, err := s.txRepo.GetByProviderReferenceForUpdate(ctx, dbTx, providerReference)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock transaction: %w", err))
	}
	if txn == nil {
		return nil, apperror.ErrNotFound("transaction")
	}
	if txn.IsCompleted() {
		return &ports.FundingSettlement{Transaction: txn, AlreadyProcessed: true}, nil
	}

	wallet, err := s.walletRepo.GetByUserIDForUpdate(ctx, dbTx, txn.UserID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lock wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	before := wallet.Balance
	after := before.Add(amount)
	if err := s.walletRepo.UpdateBalance(ctx, dbTx, wallet.ID, after); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update balance: %w", err))
	}
	if err := s.txRepo.Complete(ctx, dbTx, txn.ID, amount, before, after); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("complete transaction: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	now := time.Now().UTC()
	txn.Amount = amount
	txn.BalanceBefore = before
	txn.BalanceAfter = after
	txn.Status = domain.TransactionStatusCompleted
	txn.UpdatedAt = now
	wallet.Balance = after
	wallet.UpdatedAt = now
	s.publish(ctx, txn)

	s.log.Info().
		Str("tx_id", txn.ID.String()).
		Str("user_id", txn.UserID.String()).
		Str("provider_reference", providerReference).
		Str("amount", amount.String()).
		Msg("funding settled")

	return &ports.FundingSettlement{Transaction: txn, Wallet: wallet}, nil
}

func (s *WalletServiceImpl) publish(ctx context.Context, txn *domain.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), domain.NewLedgerEvent(txn)); err != nil {
		s.log.Warn().Err(err).Str("tx_id", txn.ID.String()).Msg("failed to publish ledger event")
	}
}

// asAppError passes typed errors through and wraps everything else as internal.
func asAppError(err error, op string) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.InternalError(fmt.Errorf("%s: %w", op, err))
}
