package service

import (
	"context"

	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Payment gateway events the ledger reacts to.
const EventChargeSuccess = "charge.success"

// Messages returned to the gateway for a processed webhook.
const (
	msgWalletFunded     = "Wallet funded successfully"
	msgAlreadyProcessed = "Transaction already processed"
	msgEventNotHandled  = "Event not handled"
)

var koboPerNaira = decimal.NewFromInt(100)

// FundingServiceImpl implements ports.FundingService.
type FundingServiceImpl struct {
	wallet  ports.WalletService
	gateway ports.PaymentProvider
	log     zerolog.Logger
}

// NewFundingService creates a new FundingServiceImpl.
func NewFundingService(wallet ports.WalletService, gateway ports.PaymentProvider, log zerolog.Logger) *FundingServiceImpl {
	return &FundingServiceImpl{
		wallet:  wallet,
		gateway: gateway,
		log:     log,
	}
}

// Initialize opens a gateway checkout and records the pending funding credit.
func (s *FundingServiceImpl) Initialize(ctx context.Context, req ports.FundingRequest) (*ports.PaymentSession, error) {
	if !domain.ValidAmount(req.Amount) {
		return nil, apperror.ErrInvalidAmount()
	}

	// The pending transaction needs a wallet to point at.
	if _, err := s.wallet.GetBalance(ctx, req.UserID); err != nil {
		return nil, err
	}

	reference := domain.NewReference(domain.ReferencePrefixPayment)
	session, err := s.gateway.Initialize(ctx, ports.PaymentInitRequest{
		UserID:     req.UserID,
		Email:      req.Email,
		AmountKobo: req.Amount.Mul(koboPerNaira).IntPart(),
		Reference:  reference,
	})
	if err != nil {
		return nil, apperror.ErrProviderFailure("Payment initialization failed", err)
	}
	if session.Reference == "" {
		session.Reference = reference
	}

	_, err = s.wallet.RecordPendingFunding(ctx, ports.PendingFunding{
		UserID:            req.UserID,
		Amount:            req.Amount,
		Reference:         reference,
		ProviderReference: session.Reference,
		Metadata: domain.Metadata{
			"description":       "Wallet funding",
			"authorization_url": session.AuthorizationURL,
			"access_code":       session.AccessCode,
		},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", req.UserID.String()).
		Str("reference", session.Reference).
		Str("amount", req.Amount.String()).
		Msg("funding initialized")
	return session, nil
}

// Verify returns the gateway's view of a payment.
func (s *FundingServiceImpl) Verify(ctx context.Context, reference string) (map[string]any, error) {
	if reference == "" {
		return nil, apperror.Validation("reference is required")
	}
	result, err := s.gateway.Verify(ctx, reference)
	if err != nil {
		return nil, apperror.ErrProviderFailure("Payment verification failed", err)
	}
	return result, nil
}

// HandleEvent applies a verified gateway webhook. Duplicate deliveries credit once.
func (s *FundingServiceImpl) HandleEvent(ctx context.Context, event ports.PaymentEvent) (string, error) {
	if event.Event != EventChargeSuccess {
		s.log.Debug().Str("event", event.Event).Msg("ignoring payment event")
		return msgEventNotHandled, nil
	}
	if event.Reference == "" {
		return "", apperror.Validation("event reference is required")
	}

	amount := decimal.New(event.AmountKobo, -2)
	settlement, err := s.wallet.SettleFunding(ctx, event.Reference, amount)
	if err != nil {
		return "", err
	}
	if settlement.AlreadyProcessed {
		s.log.Info().Str("reference", event.Reference).Msg("duplicate charge.success ignored")
		return msgAlreadyProcessed, nil
	}

	s.log.Info().
		Str("reference", event.Reference).
		Str("tx_id", settlement.Transaction.ID.String()).
		Str("amount", amount.String()).
		Msg("wallet funded")
	return msgWalletFunded, nil
}
