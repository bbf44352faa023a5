package handler

import (
	"vtu-billing/internal/adapter/http/dto"
	"vtu-billing/internal/adapter/http/middleware"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"
	"vtu-billing/pkg/response"

	"github.com/gin-gonic/gin"
)

// FundingHandler tops wallets up through the payment gateway.
type FundingHandler struct {
	fundingSvc ports.FundingService
}

// NewFundingHandler creates a new FundingHandler.
func NewFundingHandler(fundingSvc ports.FundingService) *FundingHandler {
	return &FundingHandler{fundingSvc: fundingSvc}
}

// Initialize handles POST /api/v1/funding/initialize.
// The email falls back to the one carried in the token.
func (h *FundingHandler) Initialize(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.FundingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	email := req.Email
	if email == "" {
		email = c.GetString(middleware.CtxUserEmail)
	}
	if email == "" {
		response.Error(c, apperror.Validation("email is required"))
		return
	}

	session, err := h.fundingSvc.Initialize(c.Request.Context(), ports.FundingRequest{
		UserID: userID,
		Email:  email,
		Amount: req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

// Verify handles GET /api/v1/funding/verify/:reference.
func (h *FundingHandler) Verify(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	result, err := h.fundingSvc.Verify(c.Request.Context(), c.Param("reference"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Webhook handles POST /api/v1/funding/webhook. The signature has already
// been checked by middleware.WebhookSignature.
func (h *FundingHandler) Webhook(c *gin.Context) {
	var req dto.PaystackWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	message, err := h.fundingSvc.HandleEvent(c.Request.Context(), ports.PaymentEvent{
		Event:      req.Event,
		Reference:  req.Data.Reference,
		AmountKobo: req.Data.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, message)
}
