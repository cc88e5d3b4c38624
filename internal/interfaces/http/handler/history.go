package handler

import (
	"github.com/Wolf09/back-prof-sub000/internal/application/engagement"
	"github.com/gin-gonic/gin"
)

// HistoryHandler serves the clients' purchase history
type HistoryHandler struct {
	BaseHandler
	service *engagement.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(service *engagement.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// RegisterRoutes mounts the history routes on rg
func (h *HistoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs/:id/history", h.ListByJob)
	rg.GET("/clients/:id/history", h.ListByClient)
	rg.PATCH("/history/:id", h.UpdateComment)
	rg.DELETE("/history/:id", h.Deactivate)
}

// ListByJob GET /jobs/:id/history
func (h *HistoryHandler) ListByJob(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.service.ListByJob(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// ListByClient GET /clients/:id/history
func (h *HistoryHandler) ListByClient(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	entries, err := h.service.ListByClient(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}

// UpdateComment PATCH /history/:id
func (h *HistoryHandler) UpdateComment(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req engagement.UpdateHistoryCommentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	entry, err := h.service.UpdateComment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// Deactivate DELETE /history/:id
func (h *HistoryHandler) Deactivate(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
