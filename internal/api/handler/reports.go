package handler

import (
	"fmt"
	"net/http"
	"time"

	"quejas/backend/internal/audit"
	"quejas/backend/internal/report"

	"github.com/gin-gonic/gin"
)

// GetStats handles GET /api/stats.
func (h *Handler) GetStats(c *gin.Context) {
	start := time.Now()
	ctx, cancel := h.storageCtx(c)
	defer cancel()

	stats, err := h.Storage.GetStats(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, start, "Error obteniendo estadísticas", nil)
		return
	}

	h.record(audit.Event{Op: audit.OpGeneralReport, ClientIP: c.ClientIP(), UserAgent: c.Request.UserAgent()})
	respondData(c, http.StatusOK, start, stats, nil)
}

// ExportCSV handles GET /api/reports/csv: the per-entity aggregate as a
// downloadable file, one row per entity including those with zero
// complaints.
func (h *Handler) ExportCSV(c *gin.Context) {
	start := time.Now()
	ctx, cancel := h.storageCtx(c)
	defer cancel()

	counts, err := h.Storage.AggregateByEntity(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, start, "Error generando reporte CSV", nil)
		return
	}

	today := time.Now().Format("2006-01-02")
	csv := report.RenderEntityCSV(counts, today)

	h.record(audit.Event{Op: audit.OpGeneralReport, ClientIP: c.ClientIP(), UserAgent: c.Request.UserAgent()})

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="reporte-quejas-%s.csv"`, today))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
