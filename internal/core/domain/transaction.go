package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a balance change.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// ReferencePrefix returns the prefix stamped on generated references.
func (t TransactionType) ReferencePrefix() string {
	if t == TransactionTypeDebit {
		return "DB"
	}
	return "CR"
}

// Apply returns the balance after applying amount in this direction.
func (t TransactionType) Apply(balance, amount decimal.Decimal) decimal.Decimal {
	if t == TransactionTypeDebit {
		return balance.Sub(amount)
	}
	return balance.Add(amount)
}

// TransactionCategory classifies what a balance change was for.
type TransactionCategory string

const (
	CategoryFunding             TransactionCategory = "funding"
	CategoryDataPurchase        TransactionCategory = "data_purchase"
	CategoryAirtimePurchase     TransactionCategory = "airtime_purchase"
	CategoryElectricityPurchase TransactionCategory = "electricity_purchase"
	CategoryCablePurchase       TransactionCategory = "cable_purchase"
	CategoryRefund              TransactionCategory = "refund"
	CategoryWithdrawal          TransactionCategory = "withdrawal"
	CategoryReferralReward      TransactionCategory = "referral_reward"
)

// Valid reports whether c is a known category.
func (c TransactionCategory) Valid() bool {
	switch c {
	case CategoryFunding, CategoryDataPurchase, CategoryAirtimePurchase, CategoryElectricityPurchase,
		CategoryCablePurchase, CategoryRefund, CategoryWithdrawal, CategoryReferralReward:
		return true
	}
	return false
}

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is an append-only ledger entry. Once completed it is immutable
// except for Token, which may be set once after creation.
type Transaction struct {
	ID                uuid.UUID           `json:"id"`
	UserID            uuid.UUID           `json:"user_id"`
	WalletID          uuid.UUID           `json:"wallet_id"`
	Type              TransactionType     `json:"type"`
	Category          TransactionCategory `json:"category"`
	Amount            decimal.Decimal     `json:"amount"`
	BalanceBefore     decimal.Decimal     `json:"balance_before"`
	BalanceAfter      decimal.Decimal     `json:"balance_after"`
	Status            TransactionStatus   `json:"status"`
	Reference         *string             `json:"reference,omitempty"`
	ProviderReference *string             `json:"provider_reference,omitempty"`
	Token             *string             `json:"token,omitempty"`
	Description       string              `json:"description"`
	Metadata          Metadata            `json:"metadata,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// IsCompleted returns true once the transaction has settled.
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// Balanced checks balance_after = balance_before ± amount for the transaction's direction.
func (t *Transaction) Balanced() bool {
	return t.Type.Apply(t.BalanceBefore, t.Amount).Equal(t.BalanceAfter)
}

// Metadata is free-form audit data stored alongside a transaction.
type Metadata map[string]any

// String returns the value at key when it is a non-empty string.
func (m Metadata) String(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Description returns metadata["description"] or fallback.
func (m Metadata) Description(fallback string) string {
	if s, ok := m.String("description"); ok {
		return s
	}
	return fallback
}

// Clone returns a shallow copy that is safe to extend.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m)+4)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// stringify renders scalar JSON values as strings.
func stringify(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, val != ""
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case int, int64, decimal.Decimal:
		return fmt.Sprint(val), true
	}
	return "", false
}
