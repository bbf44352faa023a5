package service

import (
	"context"
	"fmt"

	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	txRepo ports.TransactionRepository
	wallet ports.WalletService
}

// NewReportingService creates a new reporting service.
func NewReportingService(txRepo ports.TransactionRepository, wallet ports.WalletService) ports.ReportingService {
	return &reportingService{
		txRepo: txRepo,
		wallet: wallet,
	}
}

// ListTransactions returns a page of the user's transactions, newest first.
func (s *reportingService) ListTransactions(ctx context.Context, params ports.TransactionListParams) ([]domain.Transaction, int64, error) {
	if params.Limit <= 0 {
		params.Limit = defaultPageSize
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}
	if params.Offset < 0 {
		params.Offset = 0
	}
	if params.Category != nil && !params.Category.Valid() {
		return nil, 0, apperror.Validation(fmt.Sprintf("invalid category: %s", *params.Category))
	}

	txns, total, err := s.txRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return txns, total, nil
}

// GetSummary returns the balance and completed totals per category.
func (s *reportingService) GetSummary(ctx context.Context, userID uuid.UUID) (*ports.WalletSummary, error) {
	wallet, err := s.wallet.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats, err := s.txRepo.GetStats(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if stats == nil {
		stats = []ports.CategoryStat{}
	}

	return &ports.WalletSummary{
		Balance:    wallet.Balance,
		Currency:   wallet.Currency,
		Categories: stats,
	}, nil
}
