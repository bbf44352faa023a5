package service

import (
	"context"
	"errors"
	"testing"

	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/internal/core/ports/mocks"
	"vtu-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

type walletTestDeps struct {
	svc        *WalletServiceImpl
	walletRepo *mocks.MockWalletRepository
	txRepo     *mocks.MockTransactionRepository
	transactor *mocks.MockDBTransactor
	publisher  *mocks.MockLedgerEventPublisher
	ctrl       *gomock.Controller
}

func setupWalletService(t *testing.T) *walletTestDeps {
	ctrl := gomock.NewController(t)
	d := &walletTestDeps{
		walletRepo: mocks.NewMockWalletRepository(ctrl),
		txRepo:     mocks.NewMockTransactionRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		publisher:  mocks.NewMockLedgerEventPublisher(ctrl),
		ctrl:       ctrl,
	}
	d.svc = NewWalletService(d.walletRepo, d.txRepo, d.transactor, d.publisher, zerolog.Nop())
	return d
}

// ==================== GetBalance Tests ====================

func TestWalletService_GetBalance_Existing(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	wallet := &domain.Wallet{ID: uuid.New(), UserID: userID, Balance: dec("500"), Currency: "NGN"}

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(wallet, nil)

	got, err := d.svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Same(t, wallet, got)
}

func TestWalletService_GetBalance_CreatesOnFirstUse(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	var created *domain.Wallet

	gomock.InOrder(
		d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(nil, nil),
		d.walletRepo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, w *domain.Wallet) error {
				created = w
				return nil
			}),
		d.walletRepo.EXPECT().GetByUserID(ctx, userID).DoAndReturn(
			func(_ context.Context, _ uuid.UUID) (*domain.Wallet, error) {
				return created, nil
			}),
	)

	got, err := d.svc.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
	assert.True(t, got.Balance.IsZero())
	assert.Equal(t, "NGN", got.Currency)
}

func TestWalletService_GetBalance_DBError(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()

	d.walletRepo.EXPECT().GetByUserID(ctx, userID).Return(nil, errors.New("connection refused"))

	_, err := d.svc.GetBalance(ctx, userID)
	assert.True(t, apperror.Is(err, apperror.CodeInternal))
}

// ==================== Credit / Debit Tests ====================

func TestWalletService_Debit_Success(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).
		Return(&domain.Wallet{ID: walletID, UserID: userID, Balance: dec("500")}, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, walletID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, balance decimal.Decimal) error {
			assert.True(t, dec("300").Equal(balance))
			return nil
		})
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ev *domain.LedgerEvent) error {
			assert.Equal(t, domain.CategoryDataPurchase, ev.Category)
			assert.True(t, dec("300").Equal(ev.BalanceAfter))
			return nil
		})

	entry, err := d.svc.Debit(ctx, userID, dec("200"), domain.CategoryDataPurchase,
		domain.Metadata{"description": "Data purchase", "phone_number": "08031234567"})
	require.NoError(t, err)

	txn := entry.Transaction
	assert.Equal(t, domain.TransactionTypeDebit, txn.Type)
	assert.Equal(t, domain.TransactionStatusCompleted, txn.Status)
	assert.Equal(t, "Data purchase", txn.Description)
	assert.True(t, dec("500").Equal(txn.BalanceBefore))
	assert.True(t, dec("300").Equal(txn.BalanceAfter))
	assert.True(t, txn.Balanced())
	require.NotNil(t, txn.Reference)
	assert.Regexp(t, `^DB-[0-9A-Z]{26}$`, *txn.Reference)
	assert.Nil(t, txn.Token)
	assert.True(t, dec("300").Equal(entry.Wallet.Balance))
}

func TestWalletService_Credit_DefaultsAndToken(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).
		Return(&domain.Wallet{ID: walletID, UserID: userID, Balance: dec("0")}, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, walletID, gomock.Any()).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	entry, err := d.svc.Credit(ctx, userID, dec("50.25"), domain.CategoryRefund, domain.Metadata{"token": "1234-5678"})
	require.NoError(t, err)

	assert.Equal(t, "Wallet credited", entry.Transaction.Description)
	assert.Regexp(t, `^CR-`, *entry.Transaction.Reference)
	require.NotNil(t, entry.Transaction.Token)
	assert.Equal(t, "1234-5678", *entry.Transaction.Token)
	assert.True(t, dec("50.25").Equal(entry.Wallet.Balance))
}

func TestWalletService_Debit_InsufficientBalance(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).
		Return(&domain.Wallet{ID: uuid.New(), UserID: userID, Balance: dec("100")}, nil)
	// No UpdateBalance, Create or Publish.

	_, err := d.svc.Debit(ctx, userID, dec("100.01"), domain.CategoryAirtimePurchase, nil)
	assert.True(t, apperror.Is(err, apperror.CodeInsufficientBalance))
}

func TestWalletService_Debit_WalletNotFound(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).Return(nil, nil)

	_, err := d.svc.Debit(ctx, userID, dec("10"), domain.CategoryDataPurchase, nil)
	assert.True(t, apperror.Is(err, apperror.CodeWalletNotFound))
}

func TestWalletService_InvalidAmount(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()

	for _, amount := range []string{"0", "-5", "100.005", "0.001"} {
		_, err := d.svc.Credit(ctx, uuid.New(), dec(amount), domain.CategoryFunding, nil)
		assert.True(t, apperror.Is(err, apperror.CodeInvalidAmount), amount)
		_, err = d.svc.Debit(ctx, uuid.New(), dec(amount), domain.CategoryFunding, nil)
		assert.True(t, apperror.Is(err, apperror.CodeInvalidAmount), amount)
	}
}

func TestWalletService_Debit_DuplicateReferencePassesThrough(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).
		Return(&domain.Wallet{ID: uuid.New(), UserID: userID, Balance: dec("100")}, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, gomock.Any(), gomock.Any()).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(apperror.ErrDuplicateReference())

	_, err := d.svc.Debit(ctx, userID, dec("10"), domain.CategoryDataPurchase, nil)
	assert.True(t, apperror.Is(err, apperror.CodeDuplicateReference))
}

func TestWalletService_Credit_PublishFailureIsIgnored(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).
		Return(&domain.Wallet{ID: uuid.New(), UserID: userID, Balance: dec("0")}, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, gomock.Any(), gomock.Any()).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := d.svc.Credit(ctx, userID, dec("10"), domain.CategoryFunding, nil)
	assert.NoError(t, err)
}

func TestWalletService_Credit_NilPublisher(t *testing.T) {
	d := setupWalletService(t)
	d.svc = NewWalletService(d.walletRepo, d.txRepo, d.transactor, nil, zerolog.Nop())
	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).
		Return(&domain.Wallet{ID: uuid.New(), UserID: userID, Balance: dec("0")}, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, gomock.Any(), gomock.Any()).Return(nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	_, err := d.svc.Credit(ctx, userID, dec("10"), domain.CategoryFunding, nil)
	assert.NoError(t, err)
}

// ==================== GetTransaction / AttachToken Tests ====================

func TestWalletService_GetTransaction_OwnerOnly(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	owner := uuid.New()
	txn := &domain.Transaction{ID: uuid.New(), UserID: owner}

	d.txRepo.EXPECT().GetByID(ctx, txn.ID).Return(txn, nil).Times(2)

	got, err := d.svc.GetTransaction(ctx, owner, txn.ID)
	require.NoError(t, err)
	assert.Same(t, txn, got)

	_, err = d.svc.GetTransaction(ctx, uuid.New(), txn.ID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestWalletService_GetTransactionByReference(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	owner := uuid.New()
	ref := "DB-01J0000000000000000000000"
	txn := &domain.Transaction{ID: uuid.New(), UserID: owner, Reference: &ref}

	d.txRepo.EXPECT().GetByReference(ctx, ref).Return(txn, nil).Times(2)
	d.txRepo.EXPECT().GetByReference(ctx, "DB-MISSING").Return(nil, nil)
	d.txRepo.EXPECT().GetByReference(ctx, "DB-BROKEN").Return(nil, errors.New("conn reset"))

	got, err := d.svc.GetTransactionByReference(ctx, owner, ref)
	require.NoError(t, err)
	assert.Same(t, txn, got)

	_, err = d.svc.GetTransactionByReference(ctx, uuid.New(), ref)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound), "other users must not see the row")

	_, err = d.svc.GetTransactionByReference(ctx, owner, "DB-MISSING")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	_, err = d.svc.GetTransactionByReference(ctx, owner, "DB-BROKEN")
	assert.True(t, apperror.Is(err, apperror.CodeInternal))

	_, err = d.svc.GetTransactionByReference(ctx, owner, "")
	assert.True(t, apperror.Is(err, apperror.CodeValidation))
}

func TestWalletService_AttachToken(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	txID := uuid.New()

	d.txRepo.EXPECT().SetToken(ctx, txID, "1111-2222").Return(true, nil)
	d.txRepo.EXPECT().SetToken(ctx, txID, "3333-4444").Return(false, nil)

	assert.NoError(t, d.svc.AttachToken(ctx, txID, "1111-2222"))
	assert.NoError(t, d.svc.AttachToken(ctx, txID, "3333-4444"))
	assert.NoError(t, d.svc.AttachToken(ctx, txID, ""))
}

// ==================== Funding Tests ====================

func TestWalletService_RecordPendingFunding(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).
		Return(&domain.Wallet{ID: uuid.New(), UserID: userID, Balance: dec("75")}, nil)
	d.txRepo.EXPECT().Create(ctx, tx, gomock.Any()).Return(nil)

	txn, err := d.svc.RecordPendingFunding(ctx, ports.PendingFunding{
		UserID:    userID,
		Amount:    dec("1000"),
		Reference: "PAY-01J0000000000000000000000",
		Metadata:  domain.Metadata{"access_code": "ac_1"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TransactionStatusPending, txn.Status)
	assert.Equal(t, domain.CategoryFunding, txn.Category)
	assert.True(t, dec("75").Equal(txn.BalanceBefore))
	assert.True(t, dec("75").Equal(txn.BalanceAfter))
	assert.Equal(t, *txn.Reference, *txn.ProviderReference)
	assert.Equal(t, "Wallet funding", txn.Description)
}

func TestWalletService_SettleFunding_Credits(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	userID := uuid.New()
	walletID := uuid.New()
	tx := &mockTx{}
	pending := &domain.Transaction{ID: uuid.New(), UserID: userID, Status: domain.TransactionStatusPending}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().GetByProviderReferenceForUpdate(ctx, tx, "PAY-1").Return(pending, nil)
	d.walletRepo.EXPECT().GetByUserIDForUpdate(ctx, tx, userID).
		Return(&domain.Wallet{ID: walletID, UserID: userID, Balance: dec("20")}, nil)
	d.walletRepo.EXPECT().UpdateBalance(ctx, tx, walletID, gomock.Any()).Return(nil)
	d.txRepo.EXPECT().Complete(ctx, tx, pending.ID, gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ pgx.Tx, _ uuid.UUID, amount, before, after decimal.Decimal) error {
			assert.True(t, dec("1000").Equal(amount))
			assert.True(t, dec("20").Equal(before))
			assert.True(t, dec("1020").Equal(after))
			return nil
		})
	d.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	res, err := d.svc.SettleFunding(ctx, "PAY-1", dec("1000"))
	require.NoError(t, err)
	assert.False(t, res.AlreadyProcessed)
	assert.True(t, res.Transaction.IsCompleted())
	assert.True(t, dec("1020").Equal(res.Wallet.Balance))
}

func TestWalletService_SettleFunding_AlreadyProcessed(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	tx := &mockTx{}
	done := &domain.Transaction{ID: uuid.New(), Status: domain.TransactionStatusCompleted}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().GetByProviderReferenceForUpdate(ctx, tx, "PAY-1").Return(done, nil)

	res, err := d.svc.SettleFunding(ctx, "PAY-1", dec("1000"))
	require.NoError(t, err)
	assert.True(t, res.AlreadyProcessed)
}

func TestWalletService_FundingRejectsSubKoboAmounts(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()

	_, err := d.svc.RecordPendingFunding(ctx, ports.PendingFunding{UserID: uuid.New(), Amount: dec("10.001"), Reference: "PAY-1"})
	assert.True(t, apperror.Is(err, apperror.CodeInvalidAmount))

	_, err = d.svc.SettleFunding(ctx, "PAY-1", dec("10.001"))
	assert.True(t, apperror.Is(err, apperror.CodeInvalidAmount))
}

func TestWalletService_SettleFunding_UnknownReference(t *testing.T) {
	d := setupWalletService(t)
	ctx := context.Background()
	tx := &mockTx{}

	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.txRepo.EXPECT().GetByProviderReferenceForUpdate(ctx, tx, "PAY-404").Return(nil, nil)

	_, err := d.svc.SettleFunding(ctx, "PAY-404", dec("1000"))
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}
