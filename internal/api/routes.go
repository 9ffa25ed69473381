// Package api exposes the engine over HTTP.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cxd309/intercept-engine/internal/api/handlers"
	"github.com/cxd309/intercept-engine/internal/config"
	"github.com/cxd309/intercept-engine/internal/metrics"
	"github.com/cxd309/intercept-engine/internal/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg), middleware.RequestMetrics())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)
		v1.GET("/metrics", gin.WrapH(metrics.Handler()))

		v1.POST("/trajectory", handlers.ComputeTrajectory(cfg))
		v1.POST("/launch-speed", handlers.LaunchSpeed)

		v1.POST("/intercept", handlers.RunIntercept(cfg))
		v1.POST("/intercept/chart", handlers.RenderIntercept(cfg))
	}
}
