package memory

import (
	"context"
	"fmt"
	"time"

	"vtu-billing/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletRepo implements ports.WalletRepository.
type WalletRepo struct {
	store *Store
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(store *Store) *WalletRepo {
	return &WalletRepo{store: store}
}

// Create inserts the wallet unless the user already has one.
func (r *WalletRepo) Create(ctx context.Context, w *domain.Wallet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.wallets[w.UserID]; ok {
		return nil
	}
	r.store.wallets[w.UserID] = cloneWallet(w)
	r.store.walletOwners[w.ID] = w.UserID
	return nil
}

// GetByUserID fetches a user's wallet without locking.
func (r *WalletRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	w, ok := r.store.wallets[userID]
	if !ok {
		return nil, nil
	}
	return cloneWallet(w), nil
}

// GetByUserIDForUpdate locks the user's wallet until tx ends, then reads it.
func (r *WalletRepo) GetByUserIDForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.Wallet, error) {
	mt, err := asMemTx(r.store, tx)
	if err != nil {
		return nil, err
	}
	if err := mt.lock(ctx, "wallet:"+userID.String()); err != nil {
		return nil, fmt.Errorf("get wallet for update: %w", err)
	}
	return r.GetByUserID(ctx, userID)
}

// UpdateBalance stages the wallet's new balance.
func (r *WalletRepo) UpdateBalance(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, balance decimal.Decimal) error {
	mt, err := asMemTx(r.store, tx)
	if err != nil {
		return err
	}

	r.store.mu.RLock()
	userID, ok := r.store.walletOwners[walletID]
	r.store.mu.RUnlock()
	if !ok {
		return fmt.Errorf("wallet not found: %s", walletID)
	}

	mt.stage(func(s *Store) {
		w := s.wallets[userID]
		w.Balance = balance
		w.UpdatedAt = time.Now().UTC()
	})
	return nil
}
