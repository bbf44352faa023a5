package ports

//go:generate mockgen -source=providers.go -destination=mocks/providers.go -package=mocks

import (
	"context"
	"time"

	"vtu-billing/internal/core/domain"

	"github.com/google/uuid"
)

// FulfillmentProvider is the upstream reseller that delivers purchased products.
// A returned error means the call itself failed; a response with a non-success
// status means the provider refused the order.
type FulfillmentProvider interface {
	PurchaseData(ctx context.Context, req domain.DataPurchase) (*domain.ProviderResponse, error)
	PurchaseAirtime(ctx context.Context, req domain.AirtimePurchase) (*domain.ProviderResponse, error)
	PurchaseElectricity(ctx context.Context, req domain.ElectricityPurchase) (*domain.ProviderResponse, error)
	PurchaseCable(ctx context.Context, req domain.CablePurchase) (*domain.ProviderResponse, error)
	VerifyMeter(ctx context.Context, req domain.MeterVerification) (*domain.ProviderResponse, error)
}

// CatalogProvider returns the priced plan catalog.
type CatalogProvider interface {
	Plans(ctx context.Context) (domain.Catalog, error)
}

// PaymentProvider is the gateway used to fund wallets.
type PaymentProvider interface {
	Initialize(ctx context.Context, req PaymentInitRequest) (*PaymentSession, error)
	Verify(ctx context.Context, reference string) (map[string]any, error)
}

// WebhookVerifier checks that a webhook body was signed by the gateway.
type WebhookVerifier interface {
	VerifySignature(payload []byte, signature string) bool
}

// PaymentInitRequest is sent to the gateway. Amount is in kobo.
type PaymentInitRequest struct {
	UserID     uuid.UUID
	Email      string
	AmountKobo int64
	Reference  string
}

// PaymentSession is the gateway's checkout handle.
type PaymentSession struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// IdempotencyCache is the Redis-layer replay check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// SettlementClaimStore guarantees one in-flight settlement per key.
type SettlementClaimStore interface {
	// Claim returns true if the caller now owns key, false if someone else does.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// LedgerEventPublisher fans committed ledger changes out to other services.
type LedgerEventPublisher interface {
	Publish(ctx context.Context, event *domain.LedgerEvent) error
}
