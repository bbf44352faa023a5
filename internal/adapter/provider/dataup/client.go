// Package dataup is the HTTP client for the DataUp reseller API, which
// fulfils data, airtime, electricity and cable purchases and serves the plan
// catalog.
package dataup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"vtu-billing/config"
	"vtu-billing/internal/core/domain"

	"github.com/rs/zerolog"
)

const maxResponseBytes = 4 << 20

var errUnauthorized = errors.New("dataup: unauthorized")

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.FulfillmentProvider and ports.CatalogProvider.
type Client struct {
	baseURL    string
	identifier string
	password   string
	httpClient HTTPClient
	log        zerolog.Logger

	mu    sync.Mutex
	token string
}

// NewClient creates a DataUp client. A nil httpClient gets a default one
// bounded by cfg.Timeout.
func NewClient(cfg config.ProviderConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		identifier: cfg.Identifier,
		password:   cfg.Password,
		httpClient: httpClient,
		log:        log,
	}
}

// PurchaseData buys a data bundle.
func (c *Client) PurchaseData(ctx context.Context, req domain.DataPurchase) (*domain.ProviderResponse, error) {
	return c.post(ctx, "/data_purchase", url.Values{
		"phone_number": {req.PhoneNumber},
		"plan_id":      {req.PlanID},
		"reference":    {req.Reference},
	})
}

// PurchaseAirtime tops up airtime.
func (c *Client) PurchaseAirtime(ctx context.Context, req domain.AirtimePurchase) (*domain.ProviderResponse, error) {
	return c.post(ctx, "/airtime_purchase", url.Values{
		"phone_number": {req.PhoneNumber},
		"amount":       {req.Amount.String()},
		"network":      {req.Network},
		"reference":    {req.Reference},
	})
}

// PurchaseElectricity vends a prepaid meter token.
func (c *Client) PurchaseElectricity(ctx context.Context, req domain.ElectricityPurchase) (*domain.ProviderResponse, error) {
	return c.post(ctx, "/electric_purchase", url.Values{
		"phone_number": {req.PhoneNumber},
		"plan_id":      {req.PlanID},
		"amount":       {req.Amount.String()},
		"meter_number": {req.MeterNumber},
	})
}

// PurchaseCable renews a cable subscription.
func (c *Client) PurchaseCable(ctx context.Context, req domain.CablePurchase) (*domain.ProviderResponse, error) {
	return c.post(ctx, "/cable_purchase", url.Values{
		"smartcard_number": {req.SmartcardNumber},
		"plan_id":          {req.PlanID},
	})
}

// VerifyMeter resolves a meter number to its customer details.
func (c *Client) VerifyMeter(ctx context.Context, req domain.MeterVerification) (*domain.ProviderResponse, error) {
	return c.post(ctx, "/verify_meter", url.Values{
		"plan_id":      {req.PlanID},
		"meter_number": {req.MeterNumber},
	})
}

// Plans fetches the full plan catalog grouped by network.
func (c *Client) Plans(ctx context.Context) (domain.Catalog, error) {
	status, body, err := c.call(ctx, http.MethodGet, "/data", nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("dataup plans: status %d: %s", status, messageOf(body))
	}
	return decodeCatalog(body)
}

func (c *Client) post(ctx context.Context, path string, form url.Values) (*domain.ProviderResponse, error) {
	status, body, err := c.call(ctx, http.MethodPost, path, form)
	if err != nil {
		return nil, err
	}
	resp, err := decodeProviderResponse(status, body)
	if err != nil {
		return nil, fmt.Errorf("dataup %s: %w", path, err)
	}
	if !resp.IsSuccess() {
		c.log.Warn().
			Str("path", path).
			Int("http_status", status).
			Str("status", resp.Status).
			Str("message", resp.Message).
			Msg("Provider rejected request")
	}
	return resp, nil
}

// call sends an authenticated request, signing in again once on 401.
func (c *Client) call(ctx context.Context, method, path string, form url.Values) (int, []byte, error) {
	for attempt := 0; ; attempt++ {
		token, err := c.bearer(ctx)
		if err != nil {
			return 0, nil, err
		}

		status, body, err := c.send(ctx, method, path, form, token)
		if err != nil {
			return 0, nil, err
		}
		if status == http.StatusUnauthorized && attempt == 0 {
			c.log.Info().Str("path", path).Msg("Provider token rejected, signing in again")
			c.invalidate(token)
			continue
		}
		return status, body, nil
	}
}

func (c *Client) send(ctx context.Context, method, path string, form url.Values, token string) (int, []byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("dataup %s: build request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("dataup %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("dataup %s: read body: %w", path, err)
	}
	return resp.StatusCode, raw, nil
}

// bearer returns the cached token, signing in when there is none.
func (c *Client) bearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}

	form := url.Values{"identifier": {c.identifier}, "password": {c.password}}
	status, body, err := c.send(ctx, http.MethodPost, "/signin", form, "")
	if err != nil {
		return "", err
	}
	if status == http.StatusUnauthorized {
		return "", fmt.Errorf("%w: %s", errUnauthorized, messageOf(body))
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("dataup signin: status %d: %s", status, messageOf(body))
	}

	token := tokenOf(body)
	if token == "" {
		return "", errors.New("dataup signin: token not found in response")
	}
	c.token = token
	return token, nil
}

// invalidate drops token unless another goroutine already replaced it.
func (c *Client) invalidate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == token {
		c.token = ""
	}
}

func tokenOf(body []byte) string {
	var payload struct {
		Token string `json:"token"`
		Data  struct {
			Token       string `json:"token"`
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, t := range []string{payload.Token, payload.Data.Token, payload.Data.AccessToken} {
		if t != "" {
			return t
		}
	}
	return ""
}

func messageOf(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	if len(body) > 200 {
		body = body[:200]
	}
	return strings.TrimSpace(string(body))
}
