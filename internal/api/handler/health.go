package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIInfo handles GET /api.
func (h *Handler) APIInfo(c *gin.Context) {
	start := time.Now()
	respondData(c, http.StatusOK, start, gin.H{
		"name":        "Sistema de Quejas - Boyacá API",
		"version":     "2.0.0",
		"description": "API para gestión de quejas ciudadanas en Boyacá",
		"endpoints": gin.H{
			"health":   "GET /api/health",
			"entities": "GET /api/entities",
			"complaints": gin.H{
				"list":          "GET /api/complaints",
				"get":           "GET /api/complaints/:id",
				"create":        "POST /api/complaints",
				"update_status": "PATCH /api/complaints/:id/status",
				"delete":        "DELETE /api/complaints/:id",
				"by_entity":     "GET /api/complaints/entity/:entity",
			},
			"reports": gin.H{
				"stats": "GET /api/stats",
				"csv":   "GET /api/reports/csv",
			},
		},
	}, nil)
}

// HealthCheck handles GET /api/health: a read-only storage ping plus
// process uptime. Unhealthy storage answers 503.
func (h *Handler) HealthCheck(c *gin.Context) {
	start := time.Now()
	ctx, cancel := h.storageCtx(c)
	defer cancel()

	if !h.Storage.HealthCheck(ctx) {
		respond(c, http.StatusServiceUnavailable, start, gin.H{
			"success": false,
			"status":  "unhealthy",
			"message": "Base de datos no disponible",
		})
		return
	}

	respond(c, http.StatusOK, start, gin.H{
		"success": true,
		"status":  "healthy",
		"database": gin.H{
			"status": "connected",
		},
		"server": gin.H{
			"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		},
	})
}
