package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyLog stores a settled purchase so a replayed request returns the same result.
type IdempotencyLog struct {
	Key           string    `json:"key"` // Format: "user_id:category:reference"
	TransactionID uuid.UUID `json:"transaction_id"`
	ResponseJSON  []byte    `json:"response_json"`
	CreatedAt     time.Time `json:"created_at"`
}

// BuildSettlementKey constructs the replay key for a caller-supplied purchase reference.
func BuildSettlementKey(userID uuid.UUID, category TransactionCategory, reference string) string {
	return userID.String() + ":" + string(category) + ":" + reference
}
