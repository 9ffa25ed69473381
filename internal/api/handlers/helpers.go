package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cxd309/intercept-engine/internal/intercept"
	"github.com/cxd309/intercept-engine/internal/kinematics"
	"github.com/cxd309/intercept-engine/internal/monitoring"
	"github.com/cxd309/intercept-engine/internal/scenario"
)

// maxBodySize caps request bodies, matching the scenario file limit.
const maxBodySize = 1 << 20

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, kinematics.ErrInvalidParameter),
		errors.Is(err, scenario.ErrInvalidScenario),
		errors.Is(err, intercept.ErrInvalidParams):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes err as a JSON error body. Server-side failures are
// logged and their detail is not sent to the client.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		monitoring.Logf("%s %s: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// readBody returns the request body, limited to maxBodySize.
func readBody(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize)
	data, err := c.GetRawData()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		return nil, false
	}
	return data, true
}
