// Package handler maps HTTP requests onto the complaint service and shapes
// its terminal states into the JSON envelope the web UI depends on.
package handler

import (
	"context"
	"time"

	"quejas/backend/internal/audit"
	"quejas/backend/internal/challenge"
	"quejas/backend/internal/complaint"
	"quejas/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler wires the HTTP surface to the application services.
type Handler struct {
	Complaints *complaint.Service
	Storage    storage.Storage
	Audit      *audit.Logger
	Challenges *challenge.Issuer // nil when the challenge endpoint is off

	dbTimeout time.Duration
	startedAt time.Time
}

func NewHandler(svc *complaint.Service, s storage.Storage, a *audit.Logger, dbTimeout time.Duration) *Handler {
	return &Handler{
		Complaints: svc,
		Storage:    s,
		Audit:      a,
		dbTimeout:  dbTimeout,
		startedAt:  time.Now(),
	}
}

// storageCtx bounds one storage call chain with the configured timeout.
func (h *Handler) storageCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.dbTimeout)
}

// record fires an audit event without blocking the request path.
func (h *Handler) record(event audit.Event) {
	if h.Audit == nil {
		return
	}
	go h.Audit.Record(event)
}
