package handler

import (
	"net/http"
	"time"

	"quejas/backend/internal/complaint"

	"github.com/gin-gonic/gin"
)

// The response envelope {success, message?, data?, errors?, ...} is the only
// contract the web UI relies on; keep it stable.

func respond(c *gin.Context, status int, start time.Time, body gin.H) {
	body["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	body["responseTime"] = time.Since(start).Milliseconds()
	c.JSON(status, body)
}

func respondData(c *gin.Context, status int, start time.Time, data any, extra gin.H) {
	body := gin.H{"success": true, "data": data}
	for k, v := range extra {
		body[k] = v
	}
	respond(c, status, start, body)
}

func respondError(c *gin.Context, status int, start time.Time, message string, extra gin.H) {
	body := gin.H{"success": false, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	respond(c, status, start, body)
}

// outcomeStatus maps each terminal state to its HTTP status code.
func outcomeStatus(o complaint.Outcome) int {
	switch o {
	case complaint.OutcomeCreated:
		return http.StatusCreated
	case complaint.OutcomeUpdated, complaint.OutcomeDeleted:
		return http.StatusOK
	case complaint.OutcomeInvalidInput, complaint.OutcomeInvalidEntity, complaint.OutcomeInvalidStatus:
		return http.StatusBadRequest
	case complaint.OutcomeNotFound:
		return http.StatusNotFound
	case complaint.OutcomeTooManyRequests:
		return http.StatusTooManyRequests
	case complaint.OutcomeStorageError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
