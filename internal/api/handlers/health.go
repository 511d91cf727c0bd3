// backend/internal/api/handlers/health.go
package handlers

import (
	"net/http"
	"time"

	"github.com/casaplan/casaplan/backend/internal/health"
	"github.com/casaplan/casaplan/backend/internal/models"
	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "3D Floor Plan API"
	serviceVersion = "1.0.0"
)

type HealthHandler struct {
	checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// HandleInfo is the liveness/info endpoint at the API root.
func (h *HealthHandler) HandleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.InfoResponse{
		Message: serviceName,
		Version: serviceVersion,
	})
}

// HandleHealth reports dependency status.
func (h *HealthHandler) HandleHealth(c *gin.Context) {
	overall := h.checker.CheckAll()

	services := make(map[string]string, len(overall.Services))
	for _, service := range overall.Services {
		services[service.Name] = service.Status
	}

	code := http.StatusOK
	if overall.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, models.HealthResponse{
		Status:    overall.Status,
		Service:   serviceName,
		Timestamp: time.Now().Format(time.RFC3339),
		Services:  services,
	})
}
