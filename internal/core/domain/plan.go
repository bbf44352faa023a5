package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Plan is one purchasable product in the reseller catalog.
// The charge amount is the first non-empty of APIPrice, WalletPrice, Price.
type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Network     string `json:"network"`
	APIPrice    string `json:"api_price,omitempty"`
	WalletPrice string `json:"wallet_price,omitempty"`
	Price       string `json:"price,omitempty"`
	Validity    string `json:"validity,omitempty"`
}

// ResolvePrice returns the authoritative charge amount for the plan.
// Prices that do not parse or are not positive are rejected.
func (p *Plan) ResolvePrice() (decimal.Decimal, error) {
	for _, candidate := range []string{p.APIPrice, p.WalletPrice, p.Price} {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		price, err := decimal.NewFromString(candidate)
		if err != nil {
			return decimal.Zero, fmt.Errorf("plan %s: unparseable price %q", p.ID, candidate)
		}
		if !ValidAmount(price) {
			return decimal.Zero, fmt.Errorf("plan %s: price %s is not a positive kobo amount", p.ID, price)
		}
		return price, nil
	}
	return decimal.Zero, fmt.Errorf("plan %s: no price", p.ID)
}

// Catalog groups plans by network name.
type Catalog map[string][]Plan

// Find looks a plan up by id across all networks.
func (c Catalog) Find(planID string) (*Plan, bool) {
	for network, plans := range c {
		for i := range plans {
			if plans[i].ID == planID {
				plan := plans[i]
				if plan.Network == "" {
					plan.Network = network
				}
				return &plan, true
			}
		}
	}
	return nil, false
}

// Network returns the plans of one network, matched case-insensitively.
func (c Catalog) Network(name string) []Plan {
	for network, plans := range c {
		if strings.EqualFold(network, name) {
			return plans
		}
	}
	return nil
}
