package domain

import "github.com/shopspring/decimal"

// DefaultReferralRate is the share of a purchase credited to the referrer.
var DefaultReferralRate = decimal.RequireFromString("0.01")

// ReferralReward returns amount × rate rounded half-up to kobo.
func ReferralReward(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}

// ReferralStats summarises a user's referral activity.
type ReferralStats struct {
	ReferralCode   string          `json:"referral_code"`
	TotalReferrals int64           `json:"total_referrals"`
	TotalRewards   decimal.Decimal `json:"total_rewards"`
}
