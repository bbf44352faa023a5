package service

import (
	"context"
	"fmt"

	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ReferralServiceImpl implements ports.ReferralService.
type ReferralServiceImpl struct {
	userRepo ports.UserRepository
	txRepo   ports.TransactionRepository
	wallet   ports.WalletService
	rate     decimal.Decimal
	log      zerolog.Logger
}

// NewReferralService creates a new ReferralServiceImpl paying rate of every purchase.
func NewReferralService(
	userRepo ports.UserRepository,
	txRepo ports.TransactionRepository,
	wallet ports.WalletService,
	rate decimal.Decimal,
	log zerolog.Logger,
) *ReferralServiceImpl {
	return &ReferralServiceImpl{
		userRepo: userRepo,
		txRepo:   txRepo,
		wallet:   wallet,
		rate:     rate,
		log:      log,
	}
}

// Award credits the purchaser's referrer. It never returns an error: a purchase
// that already succeeded must not fail because of its reward.
func (s *ReferralServiceImpl) Award(ctx context.Context, purchaserID uuid.UUID, purchaseAmount decimal.Decimal, purchaseType string, details domain.Metadata) {
	log := s.log.With().
		Str("user_id", purchaserID.String()).
		Str("purchase_type", purchaseType).
		Str("amount", purchaseAmount.String()).
		Logger()

	purchaser, err := s.userRepo.GetByID(ctx, purchaserID)
	if err != nil {
		log.Error().Err(err).Msg("referral reward: failed to load purchaser")
		return
	}
	if purchaser == nil || !purchaser.HasReferrer() {
		return
	}

	reward := domain.ReferralReward(purchaseAmount, s.rate)
	if !reward.IsPositive() {
		return
	}

	referrerID := *purchaser.ReferredBy
	metadata := domain.Metadata{
		"description":         fmt.Sprintf("Referral reward from %s purchase", purchaseType),
		"referred_user_id":    purchaser.ID.String(),
		"referred_user_email": purchaser.Email,
		"purchase_amount":     purchaseAmount.String(),
		"purchase_type":       purchaseType,
		"reward_amount":       reward.String(),
		"details":             details,
	}

	entry, err := s.wallet.Credit(ctx, referrerID, reward, domain.CategoryReferralReward, metadata)
	if err != nil {
		log.Error().Err(err).Str("referrer_id", referrerID.String()).Str("reward", reward.String()).Msg("referral reward failed")
		return
	}

	log.Info().
		Str("referrer_id", referrerID.String()).
		Str("tx_id", entry.Transaction.ID.String()).
		Str("reward", reward.String()).
		Msg("referral reward credited")
}

// GetStats returns the user's referral code, how many users they referred and
// the total of their completed rewards.
func (s *ReferralServiceImpl) GetStats(ctx context.Context, userID uuid.UUID) (*domain.ReferralStats, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get user: %w", err))
	}
	if user == nil {
		return nil, apperror.ErrNotFound("user")
	}

	count, err := s.userRepo.CountReferredBy(ctx, userID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("count referrals: %w", err))
	}

	total, err := s.txRepo.SumByCategory(ctx, userID, domain.CategoryReferralReward, domain.TransactionStatusCompleted)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("sum rewards: %w", err))
	}

	return &domain.ReferralStats{
		ReferralCode:   user.ReferralCode,
		TotalReferrals: count,
		TotalRewards:   total.Round(2),
	}, nil
}
