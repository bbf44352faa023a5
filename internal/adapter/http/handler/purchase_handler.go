package handler

import (
	"vtu-billing/internal/adapter/http/dto"
	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"
	"vtu-billing/pkg/response"

	"github.com/gin-gonic/gin"
)

// PurchaseHandler exposes the settlement workflow per product.
type PurchaseHandler struct {
	settlementSvc ports.SettlementService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(settlementSvc ports.SettlementService) *PurchaseHandler {
	return &PurchaseHandler{settlementSvc: settlementSvc}
}

// Data handles POST /api/v1/purchases/data.
func (h *PurchaseHandler) Data(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.DataPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.settlementSvc.PurchaseData(c.Request.Context(), domain.DataPurchase{
		UserID:      userID,
		Network:     req.Network,
		PlanID:      req.PlanID,
		PhoneNumber: req.PhoneNumber,
		Reference:   req.Reference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Airtime handles POST /api/v1/purchases/airtime.
func (h *PurchaseHandler) Airtime(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.AirtimePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.settlementSvc.PurchaseAirtime(c.Request.Context(), domain.AirtimePurchase{
		UserID:      userID,
		Network:     req.Network,
		Amount:      req.Amount,
		PhoneNumber: req.PhoneNumber,
		Reference:   req.Reference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Electricity handles POST /api/v1/purchases/electricity.
func (h *PurchaseHandler) Electricity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ElectricityPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.settlementSvc.PurchaseElectricity(c.Request.Context(), domain.ElectricityPurchase{
		UserID:      userID,
		PlanID:      req.PlanID,
		MeterNumber: req.MeterNumber,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
		Reference:   req.Reference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Cable handles POST /api/v1/purchases/cable.
func (h *PurchaseHandler) Cable(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CablePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.settlementSvc.PurchaseCable(c.Request.Context(), domain.CablePurchase{
		UserID:          userID,
		PlanID:          req.PlanID,
		SmartcardNumber: req.SmartcardNumber,
		Reference:       req.Reference,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// VerifyMeter handles POST /api/v1/purchases/electricity/verify-meter.
func (h *PurchaseHandler) VerifyMeter(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var req dto.VerifyMeterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	resp, err := h.settlementSvc.VerifyMeter(c.Request.Context(), domain.MeterVerification{
		PlanID:      req.PlanID,
		MeterNumber: req.MeterNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// ListPlans handles GET /api/v1/plans?network=.
func (h *PurchaseHandler) ListPlans(c *gin.Context) {
	plans, err := h.settlementSvc.ListPlans(c.Request.Context(), c.Query("network"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, plans)
}
