package http

import (
	"time"

	"tshort_dashboard/internal/config"
	"tshort_dashboard/internal/http/handlers"
	"tshort_dashboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config, version string) {
	healthHandler := handlers.NewHealthHandler(h.Store, version)

	apiWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authWindow := time.Duration(cfg.AuthRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiWindow))

	// Auth and referred signup (public, tighter limit)
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, authWindow)
	v1.POST("/auth", authRL, h.Auth)
	v1.POST("/signup-referral", authRL, h.SignupWithReferral)
	v1.GET("/referral/:code", h.ResolveReferral)

	// Account projections
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/dashboard", middleware.JWT(), h.Dashboard)

	// Link registry
	v1.GET("/links", middleware.JWT(), h.ListLinks)
	v1.POST("/links", middleware.JWT(), h.SaveLink)

	// Partnership
	v1.GET("/partnership/links", middleware.JWT(), h.ListReferralLinks)
	v1.POST("/partnership/links", middleware.JWT(), h.CreateReferralLink)

	// Wallet
	v1.GET("/wallet", middleware.JWT(), h.Wallet)
	v1.POST("/wallet/withdraw", middleware.JWT(), h.SubmitWithdrawal)

	// Live dashboard/wallet feed
	r.GET("/ws", h.Feed)
}
