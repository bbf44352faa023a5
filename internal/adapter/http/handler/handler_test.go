package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vtu-billing/internal/adapter/http/middleware"
	"vtu-billing/internal/core/domain"
	"vtu-billing/internal/core/ports"
	"vtu-billing/internal/core/ports/mocks"
	"vtu-billing/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newContext builds a gin context for method+target. A non-nil userID plays
// the part of JWTAuth.
func newContext(method, target string, body any, userID *uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != nil {
		c.Set(middleware.CtxUserID, *userID)
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Wallet Handler Tests ---

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	walletSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(walletSvc, mocks.NewMockReportingService(ctrl))

	userID := uuid.New()
	wallet := domain.NewWallet(userID)
	wallet.Balance = decimal.RequireFromString("1500.25")
	walletSvc.EXPECT().GetBalance(gomock.Any(), userID).Return(wallet, nil)

	c, w := newContext(http.MethodGet, "/api/v1/wallet", nil, &userID)
	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, wallet.ID.String(), data["id"])
	assert.Equal(t, "1500.25", data["balance"])
	assert.Equal(t, "NGN", data["currency"])
}

func TestGetBalance_NoUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), mocks.NewMockReportingService(ctrl))

	c, w := newContext(http.MethodGet, "/api/v1/wallet", nil, nil)
	h.GetBalance(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_003", decode(t, w)["error_code"])
}

func TestListTransactions_PassesFilters(t *testing.T) {
	ctrl := gomock.NewController(t)
	reportingSvc := mocks.NewMockReportingService(ctrl)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), reportingSvc)

	userID := uuid.New()
	reportingSvc.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p ports.TransactionListParams) ([]domain.Transaction, int64, error) {
			assert.Equal(t, userID, p.UserID)
			assert.Equal(t, 100, p.Limit)
			assert.Equal(t, 10, p.Offset)
			require.NotNil(t, p.Category)
			assert.Equal(t, domain.CategoryDataPurchase, *p.Category)
			require.NotNil(t, p.Status)
			assert.Equal(t, domain.TransactionStatusCompleted, *p.Status)
			assert.Nil(t, p.Type)
			return []domain.Transaction{{ID: uuid.New(), UserID: userID}}, 11, nil
		})

	c, w := newContext(http.MethodGet, "/api/v1/wallet/transactions?limit=500&offset=10&category=data_purchase&status=completed", nil, &userID)
	h.ListTransactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(11), data["total"])
	assert.Equal(t, float64(100), data["limit"])
	assert.Len(t, data["items"], 1)
}

func TestListTransactions_EmptyPageIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	reportingSvc := mocks.NewMockReportingService(ctrl)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), reportingSvc)

	userID := uuid.New()
	reportingSvc.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).Return(nil, int64(0), nil)

	c, w := newContext(http.MethodGet, "/api/v1/wallet/transactions", nil, &userID)
	h.ListTransactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, []any{}, data["items"])
	assert.Equal(t, float64(50), data["limit"])
}

func TestListTransactions_InvalidCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	reportingSvc := mocks.NewMockReportingService(ctrl)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), reportingSvc)

	userID := uuid.New()
	reportingSvc.EXPECT().ListTransactions(gomock.Any(), gomock.Any()).
		Return(nil, int64(0), apperror.Validation("invalid category"))

	c, w := newContext(http.MethodGet, "/api/v1/wallet/transactions?category=bogus", nil, &userID)
	h.ListTransactions(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	walletSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(walletSvc, mocks.NewMockReportingService(ctrl))

	userID := uuid.New()
	txID := uuid.New()
	token := "1234-5678"
	walletSvc.EXPECT().GetTransaction(gomock.Any(), userID, txID).
		Return(&domain.Transaction{ID: txID, UserID: userID, Token: &token}, nil)

	c, w := newContext(http.MethodGet, "/", nil, &userID)
	c.Params = gin.Params{{Key: "id", Value: txID.String()}}
	h.GetTransaction(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "1234-5678", data["token"])
}

func TestGetTransaction_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), mocks.NewMockReportingService(ctrl))

	userID := uuid.New()
	c, w := newContext(http.MethodGet, "/", nil, &userID)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	h.GetTransaction(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetTransaction_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	walletSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(walletSvc, mocks.NewMockReportingService(ctrl))

	userID := uuid.New()
	walletSvc.EXPECT().GetTransaction(gomock.Any(), userID, gomock.Any()).Return(nil, apperror.ErrNotFound("transaction"))

	c, w := newContext(http.MethodGet, "/", nil, &userID)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	h.GetTransaction(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "LED_002", decode(t, w)["error_code"])
}

func TestGetTransactionByReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	walletSvc := mocks.NewMockWalletService(ctrl)
	h := NewWalletHandler(walletSvc, mocks.NewMockReportingService(ctrl))

	userID := uuid.New()
	ref := "DB-01J0000000000000000000000"
	walletSvc.EXPECT().GetTransactionByReference(gomock.Any(), userID, ref).
		Return(&domain.Transaction{ID: uuid.New(), UserID: userID, Reference: &ref}, nil)

	c, w := newContext(http.MethodGet, "/", nil, &userID)
	c.Params = gin.Params{{Key: "reference", Value: ref}}
	h.GetTransactionByReference(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, ref, data["reference"])
}

func TestGetTransactionByReference_Rejected(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		svcErr    error
		status    int
	}{
		{name: "blank", reference: "  ", status: http.StatusBadRequest},
		{name: "too long", reference: strings.Repeat("R", 101), status: http.StatusBadRequest},
		{name: "not found", reference: "DB-OTHER", svcErr: apperror.ErrNotFound("transaction"), status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			walletSvc := mocks.NewMockWalletService(ctrl)
			h := NewWalletHandler(walletSvc, mocks.NewMockReportingService(ctrl))

			userID := uuid.New()
			if tt.svcErr != nil {
				walletSvc.EXPECT().GetTransactionByReference(gomock.Any(), userID, tt.reference).Return(nil, tt.svcErr)
			}

			c, w := newContext(http.MethodGet, "/", nil, &userID)
			c.Params = gin.Params{{Key: "reference", Value: tt.reference}}
			h.GetTransactionByReference(c)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestGetSummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	reportingSvc := mocks.NewMockReportingService(ctrl)
	h := NewWalletHandler(mocks.NewMockWalletService(ctrl), reportingSvc)

	userID := uuid.New()
	reportingSvc.EXPECT().GetSummary(gomock.Any(), userID).Return(&ports.WalletSummary{
		Balance:  decimal.NewFromInt(700),
		Currency: "NGN",
		Categories: []ports.CategoryStat{
			{Category: domain.CategoryFunding, Count: 2, Total: decimal.NewFromInt(1000)},
		},
	}, nil)

	c, w := newContext(http.MethodGet, "/api/v1/wallet/summary", nil, &userID)
	h.GetSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "700", data["balance"])
	assert.Len(t, data["categories"], 1)
}

// --- Purchase Handler Tests ---

func TestPurchaseData_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	settlementSvc := mocks.NewMockSettlementService(ctrl)
	h := NewPurchaseHandler(settlementSvc)

	userID := uuid.New()
	settlementSvc.EXPECT().PurchaseData(gomock.Any(), domain.DataPurchase{
		UserID:      userID,
		Network:     "MTN",
		PlanID:      "42",
		PhoneNumber: "08031234567",
		Reference:   "ORDER-1",
	}).Return(&domain.PurchaseResult{
		Kind:   domain.PurchaseData,
		Amount: decimal.NewFromInt(300),
	}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/purchases/data", map[string]string{
		"network":      "MTN",
		"plan_id":      "42",
		"phone_number": "08031234567",
		"reference":    "ORDER-1",
	}, &userID)
	h.Data(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "300", data["amount"])
}

func TestPurchaseData_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewPurchaseHandler(mocks.NewMockSettlementService(ctrl))

	userID := uuid.New()
	c, w := newContext(http.MethodPost, "/api/v1/purchases/data", map[string]string{
		"network":      "MTN",
		"plan_id":      "42",
		"phone_number": "12345",
	}, &userID)
	h.Data(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", decode(t, w)["error_code"])
}

func TestPurchaseData_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"insufficient balance", apperror.ErrInsufficientBalance(), http.StatusPaymentRequired, "WLT_001"},
		{"invalid plan", apperror.ErrInvalidPlan("Plan not found"), http.StatusBadRequest, "PUR_001"},
		{"provider failure", apperror.ErrProviderFailure("Invalid phone number", nil), http.StatusBadGateway, "PUR_002"},
		{"refund failed", apperror.ErrRefundFailed(errors.New("db down")), http.StatusInternalServerError, "PUR_003"},
		{"duplicate", apperror.ErrDuplicateReference(), http.StatusConflict, "LED_001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			settlementSvc := mocks.NewMockSettlementService(ctrl)
			h := NewPurchaseHandler(settlementSvc)
			settlementSvc.EXPECT().PurchaseData(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			userID := uuid.New()
			c, w := newContext(http.MethodPost, "/", map[string]string{
				"network": "MTN", "plan_id": "42", "phone_number": "08031234567",
			}, &userID)
			h.Data(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w)["error_code"])
		})
	}
}

func TestPurchaseAirtime_AmountAsString(t *testing.T) {
	ctrl := gomock.NewController(t)
	settlementSvc := mocks.NewMockSettlementService(ctrl)
	h := NewPurchaseHandler(settlementSvc)

	userID := uuid.New()
	settlementSvc.EXPECT().PurchaseAirtime(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.AirtimePurchase) (*domain.PurchaseResult, error) {
			assert.True(t, req.Amount.Equal(decimal.RequireFromString("150.50")))
			assert.Equal(t, "GLO", req.Network)
			return &domain.PurchaseResult{Kind: domain.PurchaseAirtime, Amount: req.Amount}, nil
		})

	c, w := newContext(http.MethodPost, "/", `{"network":"GLO","amount":"150.50","phone_number":"08051234567"}`, &userID)
	h.Airtime(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestPurchaseAirtime_MalformedAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewPurchaseHandler(mocks.NewMockSettlementService(ctrl))

	userID := uuid.New()
	c, w := newContext(http.MethodPost, "/", `{"network":"GLO","amount":"lots","phone_number":"08051234567"}`, &userID)
	h.Airtime(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseElectricity_ReturnsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	settlementSvc := mocks.NewMockSettlementService(ctrl)
	h := NewPurchaseHandler(settlementSvc)

	userID := uuid.New()
	settlementSvc.EXPECT().PurchaseElectricity(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.ElectricityPurchase) (*domain.PurchaseResult, error) {
			assert.Equal(t, "45012345678", req.MeterNumber)
			assert.Equal(t, "ikeja-electric", req.PlanID)
			return &domain.PurchaseResult{Kind: domain.PurchaseElectricity, Amount: req.Amount, Token: "1111-2222-3333"}, nil
		})

	c, w := newContext(http.MethodPost, "/", map[string]any{
		"plan_id":      "ikeja-electric",
		"meter_number": "45012345678",
		"phone_number": "08031234567",
		"amount":       2000,
	}, &userID)
	h.Electricity(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "1111-2222-3333", data["token"])
}

func TestPurchaseCable(t *testing.T) {
	ctrl := gomock.NewController(t)
	settlementSvc := mocks.NewMockSettlementService(ctrl)
	h := NewPurchaseHandler(settlementSvc)

	userID := uuid.New()
	settlementSvc.EXPECT().PurchaseCable(gomock.Any(), domain.CablePurchase{
		UserID:          userID,
		PlanID:          "dstv-compact",
		SmartcardNumber: "7023456789",
	}).Return(&domain.PurchaseResult{Kind: domain.PurchaseCable}, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{
		"plan_id":          "dstv-compact",
		"smartcard_number": "7023456789",
	}, &userID)
	h.Cable(c)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestVerifyMeter(t *testing.T) {
	ctrl := gomock.NewController(t)
	settlementSvc := mocks.NewMockSettlementService(ctrl)
	h := NewPurchaseHandler(settlementSvc)

	userID := uuid.New()
	settlementSvc.EXPECT().VerifyMeter(gomock.Any(), domain.MeterVerification{
		PlanID:      "ikeja-electric",
		MeterNumber: "45012345678",
	}).Return(&domain.ProviderResponse{Status: "success", Data: map[string]any{"customer_name": "ADA LOVELACE"}}, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{
		"plan_id":      "ikeja-electric",
		"meter_number": "45012345678",
	}, &userID)
	h.VerifyMeter(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "success", data["status"])
}

func TestListPlans(t *testing.T) {
	ctrl := gomock.NewController(t)
	settlementSvc := mocks.NewMockSettlementService(ctrl)
	h := NewPurchaseHandler(settlementSvc)

	settlementSvc.EXPECT().ListPlans(gomock.Any(), "mtn").Return(domain.Catalog{
		"MTN": {{ID: "1", Name: "1GB"}},
	}, nil)

	userID := uuid.New()
	c, w := newContext(http.MethodGet, "/api/v1/plans?network=mtn", nil, &userID)
	h.ListPlans(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Contains(t, data, "MTN")
}

// --- Funding Handler Tests ---

func TestFundingInitialize_EmailFromToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	fundingSvc := mocks.NewMockFundingService(ctrl)
	h := NewFundingHandler(fundingSvc)

	userID := uuid.New()
	fundingSvc.EXPECT().Initialize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.FundingRequest) (*ports.PaymentSession, error) {
			assert.Equal(t, userID, req.UserID)
			assert.Equal(t, "ada@example.com", req.Email)
			assert.True(t, req.Amount.Equal(decimal.NewFromInt(5000)))
			return &ports.PaymentSession{
				AuthorizationURL: "https://checkout.paystack.com/abc",
				AccessCode:       "abc",
				Reference:        "PAY-01J9",
			}, nil
		})

	c, w := newContext(http.MethodPost, "/", `{"amount":5000}`, &userID)
	c.Set(middleware.CtxUserEmail, "ada@example.com")
	h.Initialize(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "PAY-01J9", data["reference"])
	assert.Equal(t, "https://checkout.paystack.com/abc", data["authorization_url"])
}

func TestFundingInitialize_MissingEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewFundingHandler(mocks.NewMockFundingService(ctrl))

	userID := uuid.New()
	c, w := newContext(http.MethodPost, "/", `{"amount":5000}`, &userID)
	h.Initialize(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFundingVerify(t *testing.T) {
	ctrl := gomock.NewController(t)
	fundingSvc := mocks.NewMockFundingService(ctrl)
	h := NewFundingHandler(fundingSvc)

	fundingSvc.EXPECT().Verify(gomock.Any(), "PAY-1").Return(map[string]any{"status": "success"}, nil)

	userID := uuid.New()
	c, w := newContext(http.MethodGet, "/", nil, &userID)
	c.Params = gin.Params{{Key: "reference", Value: "PAY-1"}}
	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFundingWebhook(t *testing.T) {
	ctrl := gomock.NewController(t)
	fundingSvc := mocks.NewMockFundingService(ctrl)
	h := NewFundingHandler(fundingSvc)

	fundingSvc.EXPECT().HandleEvent(gomock.Any(), ports.PaymentEvent{
		Event:      "charge.success",
		Reference:  "PAY-1",
		AmountKobo: 500000,
	}).Return("Wallet funded successfully", nil)

	c, w := newContext(http.MethodPost, "/", `{"event":"charge.success","data":{"reference":"PAY-1","amount":500000,"status":"success"}}`, nil)
	h.Webhook(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Wallet funded successfully", decode(t, w)["message"])
}

func TestFundingWebhook_UnknownReference(t *testing.T) {
	ctrl := gomock.NewController(t)
	fundingSvc := mocks.NewMockFundingService(ctrl)
	h := NewFundingHandler(fundingSvc)

	fundingSvc.EXPECT().HandleEvent(gomock.Any(), gomock.Any()).Return("", apperror.ErrNotFound("transaction"))

	c, w := newContext(http.MethodPost, "/", `{"event":"charge.success","data":{"reference":"nope","amount":100}}`, nil)
	h.Webhook(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Referral Handler Tests ---

func TestReferralStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	referralSvc := mocks.NewMockReferralService(ctrl)
	h := NewReferralHandler(referralSvc)

	userID := uuid.New()
	referralSvc.EXPECT().GetStats(gomock.Any(), userID).Return(&domain.ReferralStats{
		ReferralCode:   "ADA123",
		TotalReferrals: 3,
		TotalRewards:   decimal.RequireFromString("37.46"),
	}, nil)

	c, w := newContext(http.MethodGet, "/", nil, &userID)
	h.Stats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "ADA123", data["referral_code"])
	assert.Equal(t, "37.46", data["total_rewards"])
}

// --- Health Check ---

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Ping(context.Context) error { return s.err }
func (s stubChecker) Name() string               { return s.name }

func TestHealthCheck(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck(stubChecker{name: "memory"}, stubChecker{name: "redis"}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	r := gin.New()
	r.GET("/health", HealthCheck(stubChecker{name: "postgresql"}, stubChecker{name: "redis", err: errors.New("connection refused")}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]any)
	assert.Equal(t, "unhealthy", deps["redis"].(map[string]any)["status"])
}
