package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"asistencia/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	archive service.ArchiveService
}

// NewHealthHandler creates a new HealthHandler. archive may be nil when the
// document archive is disabled.
func NewHealthHandler(archive service.ArchiveService) *HealthHandler {
	return &HealthHandler{archive: archive}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "archive": "disabled"})
		return
	}
	if err := h.archive.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "database not reachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "archive": "enabled"})
}
