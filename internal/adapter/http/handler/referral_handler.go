package handler

import (
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReferralHandler serves referral statistics.
type ReferralHandler struct {
	referralSvc ports.ReferralService
}

// NewReferralHandler creates a new ReferralHandler.
func NewReferralHandler(referralSvc ports.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralSvc: referralSvc}
}

// Stats handles GET /api/v1/referrals/stats.
func (h *ReferralHandler) Stats(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.referralSvc.GetStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
