package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"vtu-billing/config"
	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	defaultFulfillmentTimeout = 35 * time.Second
	defaultClaimTTL           = 10 * time.Minute
	defaultResultTTL          = 24 * time.Hour
)

// SettlementServiceImpl implements ports.SettlementService.
//
// Every purchase runs the same sequence: replay check, price, claim, debit,
// fulfil, then either refund or token back-fill + referral reward. Nothing
// touches the ledger before the price is known.
type SettlementServiceImpl struct {
	wallet     ports.WalletService
	referrals  ports.ReferralService
	provider   ports.FulfillmentProvider
	catalog    ports.CatalogProvider
	idempRepo  ports.IdempotencyRepository
	idempCache ports.IdempotencyCache
	claims     ports.SettlementClaimStore
	cfg        config.SettlementConfig
	log        zerolog.Logger
}

// NewSettlementService creates a new SettlementServiceImpl.
func NewSettlementService(
	wallet ports.WalletService,
	referrals ports.ReferralService,
	provider ports.FulfillmentProvider,
	catalog ports.CatalogProvider,
	idempRepo ports.IdempotencyRepository,
	idempCache ports.IdempotencyCache,
	claims ports.SettlementClaimStore,
	cfg config.SettlementConfig,
	log zerolog.Logger,
) *SettlementServiceImpl {
	if cfg.FulfillmentTimeout <= 0 {
		cfg.FulfillmentTimeout = defaultFulfillmentTimeout
	}
	if cfg.ClaimTTL <= 0 {
		cfg.ClaimTTL = defaultClaimTTL
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = defaultResultTTL
	}
	return &SettlementServiceImpl{
		wallet:     wallet,
		referrals:  referrals,
		provider:   provider,
		catalog:    catalog,
		idempRepo:  idempRepo,
		idempCache: idempCache,
		claims:     claims,
		cfg:        cfg,
		log:        log,
	}
}

// purchaseOrder is a priced purchase ready to settle.
type purchaseOrder struct {
	kind     domain.PurchaseKind
	userID   uuid.UUID
	key      string // empty when the caller sent no reference
	amount   decimal.Decimal
	metadata domain.Metadata
	// fulfil calls the provider. ref is the debit's ledger reference, used
	// when the caller did not supply one.
	fulfil func(ctx context.Context, ref string) (*domain.ProviderResponse, error)
}

// PurchaseData buys a catalog data bundle.
func (s *SettlementServiceImpl) PurchaseData(ctx context.Context, req domain.DataPurchase) (*domain.PurchaseResult, error) {
	key := settlementKey(req.UserID, domain.PurchaseData, req.Reference)
	if res, err := s.replay(ctx, key); res != nil || err != nil {
		return res, err
	}

	plan, price, err := s.planPrice(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	return s.settle(ctx, purchaseOrder{
		kind:   domain.PurchaseData,
		userID: req.UserID,
		key:    key,
		amount: price,
		metadata: withReference(domain.Metadata{
			"description":  fmt.Sprintf("%s %s data purchase for %s", plan.Network, plan.Name, req.PhoneNumber),
			"network":      req.Network,
			"plan_id":      req.PlanID,
			"plan_name":    plan.Name,
			"phone_number": req.PhoneNumber,
		}, req.Reference),
		fulfil: func(ctx context.Context, ref string) (*domain.ProviderResponse, error) {
			if req.Reference == "" {
				req.Reference = ref
			}
			return s.provider.PurchaseData(ctx, req)
		},
	})
}

// PurchaseAirtime buys airtime for the requested amount.
func (s *SettlementServiceImpl) PurchaseAirtime(ctx context.Context, req domain.AirtimePurchase) (*domain.PurchaseResult, error) {
	key := settlementKey(req.UserID, domain.PurchaseAirtime, req.Reference)
	if res, err := s.replay(ctx, key); res != nil || err != nil {
		return res, err
	}
	if !domain.ValidAmount(req.Amount) {
		return nil, apperror.ErrInvalidPlan(msgInvalidPurchaseAmount)
	}

	return s.settle(ctx, purchaseOrder{
		kind:   domain.PurchaseAirtime,
		userID: req.UserID,
		key:    key,
		amount: req.Amount,
		metadata: withReference(domain.Metadata{
			"description":  fmt.Sprintf("%s airtime purchase for %s", req.Network, req.PhoneNumber),
			"network":      req.Network,
			"phone_number": req.PhoneNumber,
		}, req.Reference),
		fulfil: func(ctx context.Context, ref string) (*domain.ProviderResponse, error) {
			if req.Reference == "" {
				req.Reference = ref
			}
			return s.provider.PurchaseAirtime(ctx, req)
		},
	})
}

// PurchaseElectricity vends a prepaid meter token. The token is written back
// onto the debit transaction.
func (s *SettlementServiceImpl) PurchaseElectricity(ctx context.Context, req domain.ElectricityPurchase) (*domain.PurchaseResult, error) {
	key := settlementKey(req.UserID, domain.PurchaseElectricity, req.Reference)
	if res, err := s.replay(ctx, key); res != nil || err != nil {
		return res, err
	}
	if !domain.ValidAmount(req.Amount) {
		return nil, apperror.ErrInvalidPlan(msgInvalidPurchaseAmount)
	}

	return s.settle(ctx, purchaseOrder{
		kind:   domain.PurchaseElectricity,
		userID: req.UserID,
		key:    key,
		amount: req.Amount,
		metadata: withReference(domain.Metadata{
			"description":  "Electricity purchase for meter " + req.MeterNumber,
			"plan_id":      req.PlanID,
			"meter_number": req.MeterNumber,
			"phone_number": req.PhoneNumber,
		}, req.Reference),
		fulfil: func(ctx context.Context, _ string) (*domain.ProviderResponse, error) {
			return s.provider.PurchaseElectricity(ctx, req)
		},
	})
}

// PurchaseCable renews a cable subscription priced from the catalog.
func (s *SettlementServiceImpl) PurchaseCable(ctx context.Context, req domain.CablePurchase) (*domain.PurchaseResult, error) {
	key := settlementKey(req.UserID, domain.PurchaseCable, req.Reference)
	if res, err := s.replay(ctx, key); res != nil || err != nil {
		return res, err
	}

	plan, price, err := s.planPrice(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}

	return s.settle(ctx, purchaseOrder{
		kind:   domain.PurchaseCable,
		userID: req.UserID,
		key:    key,
		amount: price,
		metadata: withReference(domain.Metadata{
			"description":      fmt.Sprintf("%s subscription for smartcard %s", plan.Name, req.SmartcardNumber),
			"plan_id":          req.PlanID,
			"plan_name":        plan.Name,
			"smartcard_number": req.SmartcardNumber,
		}, req.Reference),
		fulfil: func(ctx context.Context, _ string) (*domain.ProviderResponse, error) {
			return s.provider.PurchaseCable(ctx, req)
		},
	})
}

// VerifyMeter proxies a meter lookup. It never touches the ledger.
func (s *SettlementServiceImpl) VerifyMeter(ctx context.Context, req domain.MeterVerification) (*domain.ProviderResponse, error) {
	fctx, cancel := context.WithTimeout(ctx, s.cfg.FulfillmentTimeout)
	defer cancel()

	resp, err := s.provider.VerifyMeter(fctx, req)
	if err != nil {
		return nil, apperror.ErrProviderFailure("Meter verification failed", err)
	}
	return resp, nil
}

// ListPlans returns the catalog, or only the plans of network when set.
func (s *SettlementServiceImpl) ListPlans(ctx context.Context, network string) (domain.Catalog, error) {
	catalog, err := s.catalog.Plans(ctx)
	if err != nil {
		return nil, apperror.ErrProviderFailure("Could not load plans", err)
	}
	if network == "" {
		return catalog, nil
	}
	for name, plans := range catalog {
		if strings.EqualFold(name, network) {
			return domain.Catalog{name: plans}, nil
		}
	}
	return domain.Catalog{}, nil
}

// settle runs a priced order from claim to result.
func (s *SettlementServiceImpl) settle(ctx context.Context, o purchaseOrder) (*domain.PurchaseResult, error) {
	if o.key != "" {
		claimed, err := s.claims.Claim(ctx, o.key, s.cfg.ClaimTTL)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("claim settlement: %w", err))
		}
		if !claimed {
			return nil, apperror.ErrDuplicateReference()
		}
		defer s.release(ctx, o.key)
	}

	entry, err := s.wallet.Debit(ctx, o.userID, o.amount, o.kind.Category(), o.metadata)
	if err != nil {
		return nil, err
	}
	debit := entry.Transaction

	fctx, cancel := context.WithTimeout(ctx, s.cfg.FulfillmentTimeout)
	resp, err := o.fulfil(fctx, *debit.Reference)
	cancel()

	// From here on the wallet has been charged: finish even if the caller went away.
	bg := context.WithoutCancel(ctx)

	if err != nil || !resp.IsSuccess() {
		return nil, s.refund(bg, o, debit, resp, err)
	}

	result := &domain.PurchaseResult{
		Kind:        o.kind,
		Amount:      o.amount,
		Transaction: debit,
		Provider:    resp,
	}

	if o.kind == domain.PurchaseElectricity {
		if token := resp.Token(); token != "" {
			result.Token = token
			if err := s.wallet.AttachToken(bg, debit.ID, token); err != nil {
				s.log.Error().Err(err).Str("tx_id", debit.ID.String()).Msg("failed to attach electricity token")
			} else {
				debit.Token = &token
			}
		}
	}

	s.referrals.Award(bg, o.userID, o.amount, string(o.kind), o.metadata)
	s.remember(bg, o.key, result)

	s.log.Info().
		Str("tx_id", debit.ID.String()).
		Str("user_id", o.userID.String()).
		Str("kind", string(o.kind)).
		Str("amount", o.amount.String()).
		Msg("purchase settled")

	return result, nil
}

// refund credits back a failed purchase and returns the error the caller sees.
func (s *SettlementServiceImpl) refund(
	ctx context.Context,
	o purchaseOrder,
	debit *domain.Transaction,
	resp *domain.ProviderResponse,
	callErr error,
) error {
	message := resp.FailureMessage()
	cause := callErr
	if cause == nil {
		status := ""
		if resp != nil {
			status = resp.Status
		}
		cause = fmt.Errorf("provider returned status %q", status)
	}
	reason := message
	if callErr != nil {
		reason = callErr.Error()
		if errors.Is(callErr, context.DeadlineExceeded) {
			message = "Fulfillment provider timed out"
		}
	}

	metadata := domain.Metadata{
		"description":          fmt.Sprintf("Refund for failed %s purchase", o.kind),
		"original_transaction": debit.ID.String(),
		"original_reference":   *debit.Reference,
		"original_category":    string(debit.Category),
		"reason":               reason,
	}
	if resp != nil {
		metadata["provider_response"] = resp
	}

	refund, err := s.wallet.Credit(ctx, o.userID, o.amount, domain.CategoryRefund, metadata)
	if err != nil {
		s.log.Error().Err(err).
			Str("tx_id", debit.ID.String()).
			Str("reference", *debit.Reference).
			Str("user_id", o.userID.String()).
			Str("amount", o.amount.String()).
			Str("reason", reason).
			Msg("refund failed, ledger needs reconciliation")
		return apperror.ErrRefundFailed(err)
	}

	s.log.Warn().
		Str("tx_id", debit.ID.String()).
		Str("refund_tx_id", refund.Transaction.ID.String()).
		Str("user_id", o.userID.String()).
		Str("amount", o.amount.String()).
		Str("reason", reason).
		Msg("purchase failed, debit refunded")

	return apperror.ErrProviderFailure(message, cause)
}

// replay returns the stored result of an already settled reference.
func (s *SettlementServiceImpl) replay(ctx context.Context, key string) (*domain.PurchaseResult, error) {
	if key == "" {
		return nil, nil
	}

	// Layer 1: Redis
	cached, err := s.idempCache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("redis idempotency check failed, falling through to DB")
	}
	if cached != nil {
		return decodeResult(cached)
	}

	// Layer 2: durable log
	idempLog, err := s.idempRepo.Get(ctx, key)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("db idempotency check: %w", err))
	}
	if idempLog != nil {
		return decodeResult(idempLog.ResponseJSON)
	}
	return nil, nil
}

// remember stores a settled result under its key. Failures are logged: the
// purchase itself has already succeeded.
func (s *SettlementServiceImpl) remember(ctx context.Context, key string, result *domain.PurchaseResult) {
	if key == "" {
		return
	}
	body, err := json.Marshal(result)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to encode purchase result")
		return
	}

	if err := s.idempCache.Set(ctx, key, body, s.cfg.ResultTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache purchase result")
	}
	err = s.idempRepo.Create(ctx, &domain.IdempotencyLog{
		Key:           key,
		TransactionID: result.Transaction.ID,
		ResponseJSON:  body,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("failed to store idempotency log")
	}
}

func (s *SettlementServiceImpl) release(ctx context.Context, key string) {
	if err := s.claims.Release(context.WithoutCancel(ctx), key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to release settlement claim")
	}
}

const msgInvalidPurchaseAmount = "Amount must be greater than zero with at most 2 decimal places"

// planPrice resolves a catalog plan and its charge amount.
func (s *SettlementServiceImpl) planPrice(ctx context.Context, planID string) (*domain.Plan, decimal.Decimal, error) {
	catalog, err := s.catalog.Plans(ctx)
	if err != nil {
		return nil, decimal.Zero, apperror.ErrProviderFailure("Could not load plans", err)
	}
	plan, ok := catalog.Find(planID)
	if !ok {
		return nil, decimal.Zero, apperror.ErrInvalidPlan("Plan not found")
	}
	price, err := plan.ResolvePrice()
	if err != nil {
		s.log.Warn().Err(err).Str("plan_id", planID).Msg("unusable plan price")
		return nil, decimal.Zero, apperror.ErrInvalidPlan("Invalid plan price")
	}
	return plan, price, nil
}

func settlementKey(userID uuid.UUID, kind domain.PurchaseKind, reference string) string {
	if reference == "" {
		return ""
	}
	return domain.BuildSettlementKey(userID, kind.Category(), reference)
}

func withReference(m domain.Metadata, reference string) domain.Metadata {
	if reference != "" {
		m["request_reference"] = reference
	}
	return m
}

func decodeResult(data []byte) (*domain.PurchaseResult, error) {
	var result domain.PurchaseResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("unmarshal cached result: %w", err))
	}
	return &result, nil
}
