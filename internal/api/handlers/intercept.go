package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cxd309/intercept-engine/internal/config"
	"github.com/cxd309/intercept-engine/internal/engine"
	"github.com/cxd309/intercept-engine/internal/metrics"
	"github.com/cxd309/intercept-engine/internal/render"
	"github.com/cxd309/intercept-engine/internal/scenario"
)

// runScenario decodes the scenario body and runs it. An optional stop_below
// query parameter enables the early stop. On failure the response has already
// been written.
func runScenario(c *gin.Context, cfg *config.Config) (engine.Report, bool) {
	data, ok := readBody(c)
	if !ok {
		metrics.ObserveFailure()
		return engine.Report{}, false
	}

	sc, err := scenario.Parse(data)
	if err != nil {
		metrics.ObserveFailure()
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return engine.Report{}, false
	}

	opts := engine.RunOptions{Workers: cfg.SearchWorkers}
	if raw := c.Query("stop_below"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || !(v >= 0) {
			metrics.ObserveFailure()
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "stop_below must be a non-negative number"})
			return engine.Report{}, false
		}
		opts.StopBelow = v
	}

	start := time.Now()
	report, err := engine.Run(c.Request.Context(), sc, opts)
	if err != nil {
		metrics.ObserveFailure()
		abortWithError(c, err)
		return engine.Report{}, false
	}
	metrics.ObserveRun(report, time.Since(start))
	return report, true
}

// RunIntercept runs a scenario and returns its report. A scenario without an
// intercept is still a 200 with "intercepted": false.
// POST /api/v1/intercept
func RunIntercept(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := runScenario(c, cfg)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// RenderIntercept runs a scenario and returns the interactive HTML chart.
// POST /api/v1/intercept/chart
func RenderIntercept(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := runScenario(c, cfg)
		if !ok {
			return
		}
		var page bytes.Buffer
		if err := render.WriteHTML(report, &page); err != nil {
			abortWithError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page.Bytes())
	}
}
