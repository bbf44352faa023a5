package handler

import (
	"strconv"
	"strings"

	"vtu-billing/internal/adapter/http/dto"
	"vtu-billing/internal/adapter/http/middleware"
	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/pkg/apperror"
	"vtu-billing/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// currentUser returns the authenticated user id set by JWTAuth.
// It writes the error response itself when the id is missing.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(middleware.CtxUserID)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok || id == uuid.Nil {
		response.Error(c, apperror.ErrInvalidToken())
		return uuid.Nil, false
	}
	return id, true
}

// WalletHandler serves the caller's balance and history.
type WalletHandler struct {
	walletSvc    ports.WalletService
	reportingSvc ports.ReportingService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, reportingSvc ports.ReportingService) *WalletHandler {
	return &WalletHandler{
		walletSvc:    walletSvc,
		reportingSvc: reportingSvc,
	}
}

// GetBalance handles GET /api/v1/wallet.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	wallet, err := h.walletSvc.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WalletResponse{
		ID:       wallet.ID.String(),
		Balance:  wallet.Balance,
		Currency: wallet.Currency,
	})
}

// ListTransactions handles GET /api/v1/wallet/transactions.
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	switch {
	case limit < 1:
		limit = 50
	case limit > 100:
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	params := ports.TransactionListParams{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	}
	if s := c.Query("status"); s != "" {
		status := domain.TransactionStatus(s)
		params.Status = &status
	}
	if t := c.Query("type"); t != "" {
		txType := domain.TransactionType(t)
		params.Type = &txType
	}
	if cat := c.Query("category"); cat != "" {
		category := domain.TransactionCategory(cat)
		params.Category = &category
	}

	txns, total, err := h.reportingSvc.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}

	response.OK(c, dto.TransactionListResponse{
		Items:  txns,
		Total:  total,
		Limit:  params.Limit,
		Offset: params.Offset,
	})
}

// GetTransaction handles GET /api/v1/wallet/transactions/:id.
func (h *WalletHandler) GetTransaction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}

	txn, err := h.walletSvc.GetTransaction(c.Request.Context(), userID, txID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, txn)
}

// GetTransactionByReference handles GET /api/v1/wallet/transactions/reference/:reference.
func (h *WalletHandler) GetTransactionByReference(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	reference := strings.TrimSpace(c.Param("reference"))
	if reference == "" || len(reference) > 100 {
		response.Error(c, apperror.Validation("invalid transaction reference"))
		return
	}

	txn, err := h.walletSvc.GetTransactionByReference(c.Request.Context(), userID, reference)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, txn)
}

// GetSummary handles GET /api/v1/wallet/summary.
func (h *WalletHandler) GetSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.reportingSvc.GetSummary(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}
