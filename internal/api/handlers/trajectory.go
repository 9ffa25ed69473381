package handlers

import (
	"fmt"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cxd309/intercept-engine/internal/config"
	"github.com/cxd309/intercept-engine/internal/engine"
	"github.com/cxd309/intercept-engine/internal/kinematics"
	"github.com/cxd309/intercept-engine/internal/trajectory"
)

type trajectoryRequest struct {
	X0       float64  `json:"x0"`
	Y0       float64  `json:"y0"`
	V0       float64  `json:"v0"`
	ThetaDeg float64  `json:"theta_deg"`
	DT       *float64 `json:"dt"`    // config DEFAULT_DT when absent
	G        *float64 `json:"g"`     // config GRAVITY when absent
	TMax     *float64 `json:"t_max"` // optional cap on flight time
}

type trajectoryResponse struct {
	Flight     engine.FlightSummary  `json:"flight"`
	Peak       trajectory.Sample     `json:"peak"`
	Trajectory trajectory.Trajectory `json:"trajectory"`
}

// ComputeTrajectory samples a single launch until it lands or reaches t_max.
// POST /api/v1/trajectory
func ComputeTrajectory(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := trajectoryRequest{}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		dt, g := cfg.DefaultDT, cfg.Gravity
		if req.DT != nil {
			dt = *req.DT
		}
		if req.G != nil {
			g = *req.G
		}

		ls := kinematics.LaunchState{X0: req.X0, Y0: req.Y0, V0: req.V0, Theta: kinematics.DegToRad(req.ThetaDeg)}
		if err := checkLaunch(ls, dt, g, req.TMax); err != nil {
			abortWithError(c, err)
			return
		}

		tr, err := trajectory.Compute(ls, dt, g, req.TMax)
		if err != nil {
			abortWithError(c, err)
			return
		}
		peak, _ := tr.Peak()

		c.JSON(http.StatusOK, trajectoryResponse{
			Flight:     engine.Summarize(ls, g),
			Peak:       peak,
			Trajectory: tr,
		})
	}
}

// checkLaunch rejects inputs Compute would accept but that are not physical.
func checkLaunch(ls kinematics.LaunchState, dt, g float64, tMax *float64) error {
	switch {
	case !(g > 0):
		return fmt.Errorf("g=%g must be > 0: %w", g, kinematics.ErrInvalidParameter)
	case !(ls.V0 >= 0) || math.IsInf(ls.V0, 0):
		return fmt.Errorf("v0=%g must be finite and >= 0: %w", ls.V0, kinematics.ErrInvalidParameter)
	case !(ls.Y0 >= 0) || math.IsInf(ls.Y0, 0):
		return fmt.Errorf("y0=%g must be finite and >= 0: %w", ls.Y0, kinematics.ErrInvalidParameter)
	case !(dt > 0):
		return fmt.Errorf("dt=%g must be > 0: %w", dt, kinematics.ErrInvalidParameter)
	case tMax != nil && !(*tMax >= 0):
		return fmt.Errorf("t_max=%g must be >= 0: %w", *tMax, kinematics.ErrInvalidParameter)
	}

	return nil
}
