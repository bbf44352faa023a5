package dto

import (
	"vtu-billing/internal/core/domain"

	"github.com/shopspring/decimal"
)

// DataPurchaseRequest is the request body for POST /purchases/data.
type DataPurchaseRequest struct {
	Network     string `json:"network" binding:"required,max=20,safe_id"`
	PlanID      string `json:"plan_id" binding:"required,max=50,safe_id"`
	PhoneNumber string `json:"phone_number" binding:"required,phone" sanitize:"phone"`
	Reference   string `json:"reference" binding:"omitempty,max=100,safe_id"`
}

// AirtimePurchaseRequest is the request body for POST /purchases/airtime.
// Amount accepts a JSON number or a decimal string.
type AirtimePurchaseRequest struct {
	Network     string          `json:"network" binding:"required,max=20,safe_id"`
	Amount      decimal.Decimal `json:"amount"`
	PhoneNumber string          `json:"phone_number" binding:"required,phone" sanitize:"phone"`
	Reference   string          `json:"reference" binding:"omitempty,max=100,safe_id"`
}

// ElectricityPurchaseRequest is the request body for POST /purchases/electricity.
type ElectricityPurchaseRequest struct {
	PlanID      string          `json:"plan_id" binding:"required,max=50,safe_id"`
	MeterNumber string          `json:"meter_number" binding:"required,digits_id"`
	PhoneNumber string          `json:"phone_number" binding:"required,phone" sanitize:"phone"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference" binding:"omitempty,max=100,safe_id"`
}

// CablePurchaseRequest is the request body for POST /purchases/cable.
type CablePurchaseRequest struct {
	PlanID          string `json:"plan_id" binding:"required,max=50,safe_id"`
	SmartcardNumber string `json:"smartcard_number" binding:"required,digits_id"`
	Reference       string `json:"reference" binding:"omitempty,max=100,safe_id"`
}

// VerifyMeterRequest is the request body for POST /purchases/electricity/verify-meter.
type VerifyMeterRequest struct {
	PlanID      string `json:"plan_id" binding:"required,max=50,safe_id"`
	MeterNumber string `json:"meter_number" binding:"required,digits_id"`
}

// FundingRequest is the request body for POST /funding/initialize.
type FundingRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Email  string          `json:"email" binding:"omitempty,email" sanitize:"trim"`
}

// PaystackWebhook is the subset of a gateway event the ledger reads.
// Amount is in kobo.
type PaystackWebhook struct {
	Event string `json:"event" binding:"required"`
	Data  struct {
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Status    string `json:"status"`
	} `json:"data"`
}

// WalletResponse is the response for the balance query.
type WalletResponse struct {
	ID       string          `json:"id"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// TransactionListResponse wraps a page of transactions.
type TransactionListResponse struct {
	Items  []domain.Transaction `json:"items"`
	Total  int64                `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}
