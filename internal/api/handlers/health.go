// Package handlers provides HTTP request handlers for the API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bmya/odoo-gateway/internal/api/dto"
	"github.com/bmya/odoo-gateway/internal/core/cache"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	cacheClient cache.Cache
}

// NewHealthHandler creates a new HealthHandler. The cache client is
// optional; when nil the cache component is reported as disabled.
func NewHealthHandler(cacheClient cache.Cache) *HealthHandler {
	return &HealthHandler{
		cacheClient: cacheClient,
	}
}

// Health godoc
// @Summary Health check
// @Description Returns the health status of the service and its components
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	components := make(map[string]string)
	healthy := true

	if h.cacheClient != nil {
		if err := h.cacheClient.Ping(c.Request.Context()); err != nil {
			components["cache"] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			components["cache"] = "healthy"
		}
	} else {
		components["cache"] = "disabled"
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, dto.HealthResponse{
		Status:     status,
		Components: components,
	})
}

// Ready godoc
// @Summary Readiness check
// @Description Returns whether the service is ready to accept traffic
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /ready [get]
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ready"})
}

// Live godoc
// @Summary Liveness check
// @Description Returns whether the service process is alive
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /live [get]
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "alive"})
}
