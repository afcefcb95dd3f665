package handler

import (
	"errors"
	"net/http"
	"time"

	"quejas/backend/internal/models"
	"quejas/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// ListEntities handles GET /api/entities. Only active entities are offered
// for selection; deactivated ones stay reachable through historical joins.
func (h *Handler) ListEntities(c *gin.Context) {
	start := time.Now()
	ctx, cancel := h.storageCtx(c)
	defer cancel()

	entities, err := h.Storage.ListEntities(ctx, true)
	if err != nil {
		respondError(c, http.StatusInternalServerError, start, "Error obteniendo entidades", nil)
		return
	}

	respondData(c, http.StatusOK, start, entities, gin.H{"count": len(entities)})
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrEntityNotFound) || errors.Is(err, storage.ErrComplaintNotFound)
}

func validStates() []models.Status {
	return models.ValidStatuses
}
