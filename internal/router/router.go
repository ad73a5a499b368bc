package router

import (
	"fmt"
	"strings"

	"github.com/adnex-platform/partner-api/internal/cache"
	"github.com/adnex-platform/partner-api/internal/config"
	partnerhandlers "github.com/adnex-platform/partner-api/internal/http/handlers/partner"
	"github.com/adnex-platform/partner-api/internal/logger"
	"github.com/adnex-platform/partner-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP engine with middleware and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	partnerHandler := partnerhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "adnex"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), partnerHandler.Login)
		}

		// Partner routes require an authenticated partner account.
		partner := apiV1.Group("")
		partner.Use(PartnerJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo, c.PartnerRepo))
		{
			partner.GET("/me", partnerHandler.GetMe)
			partner.GET("/wallet", partnerHandler.GetMyWallet)
			partner.GET("/earnings", partnerHandler.ListMyEarnings)
			partner.GET("/payment-methods", partnerHandler.ListMyPaymentMethods)
			partner.GET("/payouts", partnerHandler.ListPayouts)
			partner.POST("/payouts", partnerHandler.CreatePayout)
			partner.GET("/payouts/stats", partnerHandler.GetPayoutStats)
			partner.GET("/payouts/receipt", partnerHandler.GetPayoutReceipt)
			partner.GET("/payouts/:id", partnerHandler.GetPayout)
			partner.POST("/payouts/:id/cancel", partnerHandler.CancelPayout)
		}
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
