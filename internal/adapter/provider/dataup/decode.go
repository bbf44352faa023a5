package dataup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"vtu-billing/internal/core/domain"
)

// decodeProviderResponse maps a reseller reply onto domain.ProviderResponse.
// A non-2xx reply is never a success, whatever its body says.
func decodeProviderResponse(httpStatus int, body []byte) (*domain.ProviderResponse, error) {
	var raw map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if httpStatus < 200 || httpStatus >= 300 {
			return nil, fmt.Errorf("status %d: %s", httpStatus, messageOf(body))
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	normalizeNumbers(raw)

	resp := &domain.ProviderResponse{Raw: raw}
	resp.Status = scalarString(raw["status"])
	resp.Message = scalarString(raw["message"])
	if data, ok := raw["data"].(map[string]any); ok {
		resp.Data = data
	}

	if httpStatus < 200 || httpStatus >= 300 {
		if resp.Status == "" || resp.Status == domain.ProviderStatusSuccess {
			resp.Status = "failed"
		}
		if resp.Message == "" {
			resp.Message = fmt.Sprintf("Provider returned HTTP %d", httpStatus)
		}
	}
	return resp, nil
}

// normalizeNumbers turns json.Number values into their literal strings so
// ids and tokens keep every digit.
func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			val[k] = normalizeNumbers(inner)
		}
	case []any:
		for i, inner := range val {
			val[i] = normalizeNumbers(inner)
		}
	case json.Number:
		return val.String()
	}
	return v
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return domain.ProviderStatusSuccess
		}
		return "failed"
	}
	return fmt.Sprint(v)
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*f = flexString(n.String())
	return nil
}

type planPayload struct {
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	Network     string     `json:"network"`
	APIPrice    flexString `json:"api_price"`
	WalletPrice flexString `json:"wallet_price"`
	Price       flexString `json:"price"`
	Validity    string     `json:"validity"`
}

func decodeCatalog(body []byte) (domain.Catalog, error) {
	var envelope struct {
		Data struct {
			DataPlans json.RawMessage `json:"data_plans"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("dataup plans: decode response: %w", err)
	}

	catalog := domain.Catalog{}
	plansJSON := bytes.TrimSpace(envelope.Data.DataPlans)
	// an empty catalog comes back as [] instead of an object
	if len(plansJSON) == 0 || plansJSON[0] != '{' {
		return catalog, nil
	}

	var byNetwork map[string][]planPayload
	if err := json.Unmarshal(plansJSON, &byNetwork); err != nil {
		return nil, fmt.Errorf("dataup plans: decode plans: %w", err)
	}
	for network, plans := range byNetwork {
		out := make([]domain.Plan, 0, len(plans))
		for _, p := range plans {
			plan := domain.Plan{
				ID:          strings.TrimSpace(string(p.ID)),
				Name:        p.Name,
				Network:     p.Network,
				APIPrice:    string(p.APIPrice),
				WalletPrice: string(p.WalletPrice),
				Price:       string(p.Price),
				Validity:    p.Validity,
			}
			if plan.Network == "" {
				plan.Network = network
			}
			out = append(out, plan)
		}
		catalog[network] = out
	}
	return catalog, nil
}
