// Package paystack is the wallet funding gateway client.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"vtu-billing/config"
	"vtu-billing/internal/core/ports"

	"github.com/rs/zerolog"
)

const maxResponseBytes = 1 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements ports.PaymentProvider against the Paystack REST API.
type Client struct {
	baseURL     string
	secretKey   string
	callbackURL string
	httpClient  HTTPClient
	log         zerolog.Logger
}

// NewClient creates a Paystack client. A nil httpClient gets a default one
// bounded by cfg.Timeout.
func NewClient(cfg config.PaystackConfig, httpClient HTTPClient, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		secretKey:   cfg.SecretKey,
		callbackURL: cfg.CallbackURL,
		httpClient:  httpClient,
		log:         log,
	}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeRequest struct {
	Email       string         `json:"email"`
	Amount      int64          `json:"amount"`
	Reference   string         `json:"reference"`
	CallbackURL string         `json:"callback_url,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Initialize opens a checkout session. The amount is in kobo.
func (c *Client) Initialize(ctx context.Context, req ports.PaymentInitRequest) (*ports.PaymentSession, error) {
	body := initializeRequest{
		Email:       req.Email,
		Amount:      req.AmountKobo,
		Reference:   req.Reference,
		CallbackURL: c.callbackURL,
		Metadata: map[string]any{
			"user_id": req.UserID.String(),
			"custom_fields": []map[string]string{{
				"display_name":  "User ID",
				"variable_name": "user_id",
				"value":         req.UserID.String(),
			}},
		},
	}

	env, err := c.do(ctx, http.MethodPost, "/transaction/initialize", body)
	if err != nil {
		return nil, err
	}

	var session ports.PaymentSession
	if err := json.Unmarshal(env.Data, &session); err != nil {
		return nil, fmt.Errorf("paystack initialize: decode data: %w", err)
	}
	if session.Reference == "" {
		session.Reference = req.Reference
	}
	return &session, nil
}

// Verify fetches the gateway's view of a transaction.
func (c *Client) Verify(ctx context.Context, reference string) (map[string]any, error) {
	env, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}
	out := map[string]any{"status": env.Status, "message": env.Message}
	if len(env.Data) > 0 {
		var data any
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("paystack verify: decode data: %w", err)
		}
		out["data"] = data
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (*envelope, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("paystack %s: encode request: %w", path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("paystack %s: build request: %w", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paystack %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("paystack %s: read body: %w", path, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("paystack %s: status %d: decode response: %w", path, resp.StatusCode, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Status {
		c.log.Warn().
			Str("path", path).
			Int("http_status", resp.StatusCode).
			Str("message", env.Message).
			Msg("Paystack request rejected")
		return nil, fmt.Errorf("paystack %s: status %d: %s", path, resp.StatusCode, env.Message)
	}
	return &env, nil
}
