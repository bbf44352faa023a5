package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"strings"
)

// WebhookSignatureService implements ports.WebhookVerifier for the payment
// gateway: the signature is the hex HMAC-SHA512 of the raw body.
type WebhookSignatureService struct {
	secret []byte
}

// NewWebhookSignatureService creates a verifier bound to the gateway secret.
func NewWebhookSignatureService(secret string) *WebhookSignatureService {
	return &WebhookSignatureService{secret: []byte(secret)}
}

// Sign computes HMAC-SHA512 of payload. Returns lowercase hex.
func (s *WebhookSignatureService) Sign(payload []byte) string {
	mac := hmac.New(sha512.New, s.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks signature against the body in constant time.
// An unconfigured secret rejects everything.
func (s *WebhookSignatureService) VerifySignature(payload []byte, signature string) bool {
	if len(s.secret) == 0 || signature == "" {
		return false
	}
	expected := s.Sign(payload)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}
