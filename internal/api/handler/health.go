package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	generateEnabled bool
	ledgerEnabled   bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(generateEnabled, ledgerEnabled bool) *HealthHandler {
	return &HealthHandler{
		generateEnabled: generateEnabled,
		ledgerEnabled:   ledgerEnabled,
	}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"generate": h.generateEnabled,
		"ledger":   h.ledgerEnabled,
	})
}
