package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerEvent announces a committed balance change to downstream consumers.
type LedgerEvent struct {
	TransactionID uuid.UUID           `json:"transaction_id"`
	UserID        uuid.UUID           `json:"user_id"`
	Type          TransactionType     `json:"type"`
	Category      TransactionCategory `json:"category"`
	Amount        decimal.Decimal     `json:"amount"`
	BalanceAfter  decimal.Decimal     `json:"balance_after"`
	Reference     string              `json:"reference"`
	OccurredAt    time.Time           `json:"occurred_at"`
}

// NewLedgerEvent builds the event for a completed transaction.
func NewLedgerEvent(t *Transaction) *LedgerEvent {
	ev := &LedgerEvent{
		TransactionID: t.ID,
		UserID:        t.UserID,
		Type:          t.Type,
		Category:      t.Category,
		Amount:        t.Amount,
		BalanceAfter:  t.BalanceAfter,
		OccurredAt:    t.UpdatedAt,
	}
	if t.Reference != nil {
		ev.Reference = *t.Reference
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	return ev
}
