package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cxd309/intercept-engine/internal/launcher"
)

// LaunchSpeed converts a spring definition into its launch and maximum speeds.
// POST /api/v1/launch-speed
func LaunchSpeed(c *gin.Context) {
	var spec launcher.Spec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	speed, err := launcher.LaunchSpeed(spec.Launcher)
	if err != nil {
		abortWithError(c, err)
		return
	}
	maxSpeed, err := spec.Launcher.MaxSpeed()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"model":     spec.Model,
		"speed":     speed,
		"max_speed": maxSpeed,
	})
}
