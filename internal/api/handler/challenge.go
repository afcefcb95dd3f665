package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetChallenge handles GET /api/challenge. Registered only when the
// anti-bot challenge is enabled.
func (h *Handler) GetChallenge(c *gin.Context) {
	start := time.Now()

	ch, err := h.Challenges.Issue()
	if err != nil {
		respondError(c, http.StatusInternalServerError, start, "Error generando desafío", nil)
		return
	}

	respondData(c, http.StatusOK, start, ch, nil)
}
