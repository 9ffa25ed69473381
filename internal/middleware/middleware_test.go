package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/cxd309/intercept-engine/internal/config"
	"github.com/cxd309/intercept-engine/internal/monitoring"
)

func init() {
	gin.SetMode(gin.TestMode)
	monitoring.SetLogger(nil)
}

func router(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(CORSMiddleware(cfg), RequestMetrics())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func get(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSDevelopmentAllowsAnyOrigin(t *testing.T) {
	rec := get(router(&config.Config{Environment: "development"}), "http://localhost:5173")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSExplicitOrigins(t *testing.T) {
	r := router(&config.Config{Environment: "production", AllowedOrigins: []string{"https://app.example"}})

	rec := get(r, "https://app.example")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = get(r, "https://evil.example")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORSProductionWithoutOrigins(t *testing.T) {
	rec := get(router(&config.Config{Environment: "production"}), "https://app.example")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
