package domain

import "github.com/google/uuid"

// User is the subset of the account record the ledger reads.
// ReferredBy is set at registration and never changed here.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	ReferralCode string     `json:"referral_code"`
	ReferredBy   *uuid.UUID `json:"referred_by,omitempty"`
}

// HasReferrer reports whether another user referred this one.
func (u *User) HasReferrer() bool {
	return u.ReferredBy != nil && *u.ReferredBy != uuid.Nil
}
