package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProviderStatusSuccess is the only fulfillment status treated as success.
const ProviderStatusSuccess = "success"

// PurchaseKind is a product line sold through the fulfillment provider.
type PurchaseKind string

const (
	PurchaseData        PurchaseKind = "data"
	PurchaseAirtime     PurchaseKind = "airtime"
	PurchaseElectricity PurchaseKind = "electricity"
	PurchaseCable       PurchaseKind = "cable"
)

// Category returns the ledger category a debit for this kind is booked under.
func (k PurchaseKind) Category() TransactionCategory {
	switch k {
	case PurchaseData:
		return CategoryDataPurchase
	case PurchaseAirtime:
		return CategoryAirtimePurchase
	case PurchaseElectricity:
		return CategoryElectricityPurchase
	case PurchaseCable:
		return CategoryCablePurchase
	}
	return ""
}

// DataPurchase buys a data bundle from the catalog.
type DataPurchase struct {
	UserID      uuid.UUID
	Network     string
	PlanID      string
	PhoneNumber string
	Reference   string // optional, makes the purchase replay-safe
}

// AirtimePurchase buys an arbitrary airtime amount.
type AirtimePurchase struct {
	UserID      uuid.UUID
	Network     string
	Amount      decimal.Decimal
	PhoneNumber string
	Reference   string
}

// ElectricityPurchase vends a prepaid meter token. PlanID identifies the distribution company.
type ElectricityPurchase struct {
	UserID      uuid.UUID
	PlanID      string
	MeterNumber string
	PhoneNumber string
	Amount      decimal.Decimal
	Reference   string
}

// CablePurchase renews a cable TV subscription from the catalog.
type CablePurchase struct {
	UserID          uuid.UUID
	PlanID          string
	SmartcardNumber string
	Reference       string
}

// MeterVerification checks a meter number without touching the ledger.
type MeterVerification struct {
	PlanID      string
	MeterNumber string
}

// ProviderResponse is the fulfillment provider's reply.
type ProviderResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Raw     map[string]any `json:"raw,omitempty"`
}

// IsSuccess reports whether the provider confirmed fulfillment.
func (r *ProviderResponse) IsSuccess() bool {
	return r != nil && r.Status == ProviderStatusSuccess
}

// Token extracts the vended token: data.token first, then a top-level token.
func (r *ProviderResponse) Token() string {
	if r == nil {
		return ""
	}
	if s, ok := stringify(r.Data["token"]); ok {
		return s
	}
	if s, ok := stringify(r.Raw["token"]); ok {
		return s
	}
	return ""
}

// FailureMessage is what a caller sees when fulfillment did not succeed.
func (r *ProviderResponse) FailureMessage() string {
	if r == nil {
		return ""
	}
	if r.Message != "" {
		return r.Message
	}
	if r.Status != "" {
		return "Provider returned status " + r.Status
	}
	return ""
}

// PurchaseResult is returned to the caller of a settled purchase.
type PurchaseResult struct {
	Kind        PurchaseKind      `json:"kind"`
	Amount      decimal.Decimal   `json:"amount"`
	Transaction *Transaction      `json:"transaction"`
	Provider    *ProviderResponse `json:"provider_response"`
	Token       string            `json:"token,omitempty"`
}
