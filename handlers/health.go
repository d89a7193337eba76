package handlers

import (
	"bulkimage/config"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	extensions []string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(extensions []string) *HealthHandler {
	return &HealthHandler{extensions: extensions}
}

// HealthCheck returns the health status of the service
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "bulkimage",
		"version":   "1.0.0",
		"timestamp": time.Now().Unix(),
	})
}

// APIStatus returns the status of the API
func (h *HealthHandler) APIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":        "Bulk image API is running",
		"default_folder": config.GetDefaultFolder(),
		"extensions":     h.extensions,
	})
}
