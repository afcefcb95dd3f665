package handler

import "github.com/gin-gonic/gin"

// Register mounts every API route on the router. The challenge endpoint
// only exists when the issuer is configured.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")

	api.GET("", h.APIInfo)
	api.GET("/health", h.HealthCheck)
	api.GET("/entities", h.ListEntities)

	api.GET("/complaints", h.ListComplaints)
	api.POST("/complaints", h.CreateComplaint)
	api.GET("/complaints/:id", h.GetComplaint)
	api.PATCH("/complaints/:id/status", h.UpdateComplaintStatus)
	api.DELETE("/complaints/:id", h.DeleteComplaint)
	api.GET("/complaints/entity/:entity", h.ListComplaintsByEntity)

	api.GET("/stats", h.GetStats)
	api.GET("/reports/csv", h.ExportCSV)

	if h.Challenges != nil {
		api.GET("/challenge", h.GetChallenge)
	}
}
