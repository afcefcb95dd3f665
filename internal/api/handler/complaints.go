package handler

import (
	"net/http"
	"strconv"
	"time"

	"quejas/backend/internal/audit"
	"quejas/backend/internal/complaint"
	"quejas/backend/internal/obs"

	"github.com/gin-gonic/gin"
)

type createComplaintRequest struct {
	EntityID        any    `json:"entity_id"`
	Description     string `json:"description"`
	ChallengeToken  string `json:"challenge_token,omitempty"`
	ChallengeAnswer int    `json:"challenge_answer,omitempty"`
}

// CreateComplaint handles POST /api/complaints.
func (h *Handler) CreateComplaint(c *gin.Context) {
	start := time.Now()

	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, start, "Datos inválidos", gin.H{
			"errors": []string{"El cuerpo de la solicitud no es JSON válido"},
		})
		return
	}

	ctx, cancel := h.storageCtx(c)
	defer cancel()

	res := h.Complaints.Submit(ctx, complaint.SubmitRequest{
		EntityID:        req.EntityID,
		Description:     req.Description,
		OriginIP:        c.ClientIP(),
		UserAgent:       c.Request.UserAgent(),
		ChallengeToken:  req.ChallengeToken,
		ChallengeAnswer: req.ChallengeAnswer,
	})

	switch res.Outcome {
	case complaint.OutcomeCreated:
		obs.ComplaintCreated()
		h.record(audit.Event{
			Op:         audit.OpCreateComplaint,
			ClientIP:   c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			EntityName: res.EntityName,
			Details:    map[string]any{"complaint_id": res.Complaint.ID},
		})
		respondData(c, http.StatusCreated, start, gin.H{
			"id":          res.Complaint.ID,
			"entity_id":   res.Complaint.EntityID,
			"entity_name": res.EntityName,
			"description": res.Complaint.Description,
			"status":      res.Complaint.Status,
		}, gin.H{"message": res.Message})
	case complaint.OutcomeInvalidInput:
		respondError(c, outcomeStatus(res.Outcome), start, res.Message, gin.H{"errors": res.Errors})
	case complaint.OutcomeTooManyRequests:
		respondError(c, outcomeStatus(res.Outcome), start, res.Message, gin.H{
			"retry_after": int(res.RetryAfter.Seconds()),
		})
	default:
		respondError(c, outcomeStatus(res.Outcome), start, res.Message, nil)
	}
}

// ListComplaints handles GET /api/complaints.
func (h *Handler) ListComplaints(c *gin.Context) {
	start := time.Now()
	ctx, cancel := h.storageCtx(c)
	defer cancel()

	complaints, err := h.Storage.ListComplaints(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, start, "Error obteniendo quejas", nil)
		return
	}

	h.record(audit.Event{Op: audit.OpConsultAll, ClientIP: c.ClientIP(), UserAgent: c.Request.UserAgent()})
	respondData(c, http.StatusOK, start, complaints, gin.H{"count": len(complaints)})
}

// GetComplaint handles GET /api/complaints/:id.
func (h *Handler) GetComplaint(c *gin.Context) {
	start := time.Now()

	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, start, "Queja no encontrada", nil)
		return
	}

	ctx, cancel := h.storageCtx(c)
	defer cancel()

	found, err := h.Storage.GetComplaintByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			respondError(c, http.StatusNotFound, start, "Queja no encontrada", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, start, "Error obteniendo queja", nil)
		return
	}

	respondData(c, http.StatusOK, start, found, nil)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateComplaintStatus handles PATCH /api/complaints/:id/status.
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	start := time.Now()

	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, start, "Queja no encontrada", nil)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, start, "Estado inválido", nil)
		return
	}

	ctx, cancel := h.storageCtx(c)
	defer cancel()

	res := h.Complaints.UpdateStatus(ctx, id, req.Status)
	switch res.Outcome {
	case complaint.OutcomeUpdated:
		h.record(audit.Event{
			Op:       audit.OpUpdateStatus,
			ClientIP: c.ClientIP(),
			Details:  map[string]any{"complaint_id": id, "status": req.Status},
		})
		respondData(c, http.StatusOK, start, gin.H{
			"id":              id,
			"previous_status": res.PreviousStatus,
			"new_status":      res.Complaint.Status,
		}, gin.H{"message": res.Message})
	case complaint.OutcomeInvalidStatus:
		respondError(c, outcomeStatus(res.Outcome), start, res.Message, gin.H{
			"valid_states": validStates(),
		})
	default:
		respondError(c, outcomeStatus(res.Outcome), start, res.Message, nil)
	}
}

// DeleteComplaint handles DELETE /api/complaints/:id.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	start := time.Now()

	id, ok := parseID(c.Param("id"))
	if !ok {
		respondError(c, http.StatusNotFound, start, "Queja no encontrada", nil)
		return
	}

	ctx, cancel := h.storageCtx(c)
	defer cancel()

	res := h.Complaints.Delete(ctx, id)
	if res.Outcome == complaint.OutcomeDeleted {
		h.record(audit.Event{
			Op:       audit.OpDeleteComplaint,
			ClientIP: c.ClientIP(),
			Details:  map[string]any{"complaint_id": id},
		})
		respond(c, http.StatusOK, start, gin.H{"success": true, "message": res.Message})
		return
	}
	respondError(c, outcomeStatus(res.Outcome), start, res.Message, nil)
}

// ListComplaintsByEntity handles GET /api/complaints/entity/:entity, where
// :entity may be a numeric id or a (partial) entity name.
func (h *Handler) ListComplaintsByEntity(c *gin.Context) {
	start := time.Now()
	ctx, cancel := h.storageCtx(c)
	defer cancel()

	entity, err := h.Complaints.ResolveEntity(ctx, c.Param("entity"))
	if err != nil {
		if isNotFound(err) {
			respondError(c, http.StatusNotFound, start, "Entidad no encontrada", nil)
			return
		}
		respondError(c, http.StatusInternalServerError, start, "Error obteniendo quejas por entidad", nil)
		return
	}

	complaints, err := h.Storage.ListComplaintsByEntity(ctx, entity.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, start, "Error obteniendo quejas por entidad", nil)
		return
	}

	h.record(audit.Event{
		Op:         audit.OpConsultByEntity,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		EntityName: entity.Name,
	})
	respondData(c, http.StatusOK, start, complaints, gin.H{
		"entity": entity,
		"count":  len(complaints),
	})
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
