package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/marketplace-backend/internal/config"
	"github.com/ignatzorin/marketplace-backend/internal/http/handlers"
	"github.com/ignatzorin/marketplace-backend/internal/http/middleware"
	"github.com/ignatzorin/marketplace-backend/internal/service"
)

// SetupRouter собирает все маршруты движка.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	listingHandler *handlers.ListingHandler,
	orderHandler *handlers.OrderHandler,
	ledgerHandler *handlers.LedgerHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/listings", listingHandler.List)
	api.GET("/listings/:id", middleware.ListingIDValidator("id"), listingHandler.Get)
	api.GET("/orders/:id", middleware.OrderIDValidator("id"), orderHandler.Get)
	api.GET("/ledger/total", ledgerHandler.TotalHeld)
	api.GET("/ledger/balance/:accountId", middleware.UUIDValidator("accountId"), ledgerHandler.BalanceOfAccount)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/listings", listingHandler.Create)
		protected.GET("/listings/my", listingHandler.ListMine)
		protected.PUT("/listings/:id", middleware.ListingIDValidator("id"), listingHandler.Update)
		protected.POST("/listings/:id/buy", middleware.ListingIDValidator("id"), orderHandler.Buy)

		protected.GET("/orders", orderHandler.ListMine)
		protected.POST("/orders/:id/seller-approval", middleware.OrderIDValidator("id"), orderHandler.SellerApproval)
		protected.POST("/orders/:id/buyer-approval", middleware.OrderIDValidator("id"), orderHandler.BuyerApproval)
		protected.POST("/orders/:id/buyer-cancel", middleware.OrderIDValidator("id"), orderHandler.BuyerCancel)
		protected.POST("/orders/:id/seller-cancel", middleware.OrderIDValidator("id"), orderHandler.SellerCancel)

		protected.POST("/ledger/deposit", ledgerHandler.Deposit)
		protected.GET("/ledger/balance", ledgerHandler.Balance)
		protected.POST("/ledger/withdrawals", ledgerHandler.Withdraw)
		protected.GET("/ledger/withdrawals", ledgerHandler.ListWithdrawals)
		protected.GET("/ledger/transactions", ledgerHandler.ListTransactions)
	}

	return r
}
