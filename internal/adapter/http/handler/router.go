package handler

import (
	"vtu-billing/internal/adapter/http/middleware"
	redisStore "vtu-billing/internal/adapter/storage/redis"
	"vtu-billing/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc       ports.WalletService
	SettlementSvc   ports.SettlementService
	FundingSvc      ports.FundingService
	ReferralSvc     ports.ReferralService
	ReportingSvc    ports.ReportingService
	TokenSvc        ports.TokenService
	WebhookVerifier ports.WebhookVerifier
	RateLimitStore  *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers  []ports.HealthChecker
	Logger          zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	limiter := middleware.NewLimiter(deps.RateLimitStore, middleware.DefaultQuotas(), deps.Logger)

	v1 := r.Group("/api/v1")
	fundingHandler := NewFundingHandler(deps.FundingSvc)

	// --- Gateway callbacks (signature-authenticated) ---
	v1.POST("/funding/webhook", middleware.WebhookSignature(deps.WebhookVerifier, deps.Logger), fundingHandler.Webhook)

	// --- JWT-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	authed := v1.Group("", jwtAuth)

	walletHandler := NewWalletHandler(deps.WalletSvc, deps.ReportingSvc)
	wallet := authed.Group("/wallet", limiter.For("wallet"))
	{
		wallet.GET("", walletHandler.GetBalance)
		wallet.GET("/transactions", walletHandler.ListTransactions)
		wallet.GET("/transactions/:id", walletHandler.GetTransaction)
		wallet.GET("/transactions/reference/:reference", walletHandler.GetTransactionByReference)
		wallet.GET("/summary", walletHandler.GetSummary)
	}

	funding := authed.Group("/funding", limiter.For("funding"))
	{
		funding.POST("/initialize", fundingHandler.Initialize)
		funding.GET("/verify/:reference", fundingHandler.Verify)
	}

	purchaseHandler := NewPurchaseHandler(deps.SettlementSvc)
	authed.GET("/plans", limiter.For("wallet"), purchaseHandler.ListPlans)

	purchases := authed.Group("/purchases", limiter.For("purchases"))
	{
		purchases.POST("/data", purchaseHandler.Data)
		purchases.POST("/airtime", purchaseHandler.Airtime)
		purchases.POST("/electricity", purchaseHandler.Electricity)
		purchases.POST("/electricity/verify-meter", purchaseHandler.VerifyMeter)
		purchases.POST("/cable", purchaseHandler.Cable)
	}

	referralHandler := NewReferralHandler(deps.ReferralSvc)
	authed.GET("/referrals/stats", limiter.For("wallet"), referralHandler.Stats)

	return r
}
