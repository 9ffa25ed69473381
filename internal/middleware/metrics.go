// Package middleware holds the gin middleware shared by the HTTP server.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cxd309/intercept-engine/internal/metrics"
)

// RequestMetrics records every request in the Prometheus request counters.
// Unmatched routes are grouped under "unmatched".
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
