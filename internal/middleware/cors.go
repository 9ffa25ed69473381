package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cxd309/intercept-engine/internal/config"
	"github.com/cxd309/intercept-engine/internal/monitoring"
)

// CORSMiddleware returns a CORS middleware configured for the environment.
// Explicit origins always win; without them development accepts any origin and
// production only serves same-origin requests.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Length", "Content-Type", "Accept",
			"Cache-Control", "X-Requested-With",
		},
		MaxAge: 12 * time.Hour,
	}

	switch {
	case len(cfg.AllowedOrigins) > 0:
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		monitoring.Logf("[CORS] allowed origins: %v", cfg.AllowedOrigins)
	case cfg.Environment != "production":
		corsConfig.AllowAllOrigins = true
	default:
		monitoring.Logf("[CORS] no origins configured, cross-origin requests disabled")
		return func(c *gin.Context) { c.Next() }
	}

	return cors.New(corsConfig)
}
