package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alexandreelkhoury/baseTokenLauncher-sub001/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, metricsHandler http.Handler) {
	// Health check and metrics endpoints (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Token endpoints (public read, authenticated write)
		v1.GET("/tokens", handler.ListTokens)
		v1.POST("/tokens", middleware.Auth(authCfg), handler.CreateToken)

		// Liquidity endpoints (requires authentication)
		v1.POST("/liquidity", middleware.Auth(authCfg), handler.CreateLiquidity)

		// User profile endpoints (requires authentication)
		v1.POST("/users", middleware.Auth(authCfg), handler.UpsertUser)
		v1.POST("/push-tokens", middleware.Auth(authCfg), handler.RegisterPushToken)

		// Leaderboard, stats and achievements (public read access)
		v1.GET("/leaderboard", handler.GetLeaderboard)
		v1.GET("/stats", handler.GetGlobalStats)
		v1.GET("/users/:address/stats", handler.GetUserStats)
		v1.GET("/users/:address/achievements", handler.GetAchievements)
	}
}
