package handler

import (
	"github.com/Wolf09/back-prof-sub000/internal/application/engagement"
	"github.com/gin-gonic/gin"
)

// JobInActionHandler drives engagements through their status lifecycle
type JobInActionHandler struct {
	BaseHandler
	service *engagement.Service
}

// NewJobInActionHandler creates a new JobInActionHandler
func NewJobInActionHandler(service *engagement.Service) *JobInActionHandler {
	return &JobInActionHandler{service: service}
}

// RegisterRoutes mounts the job-in-action routes on rg
func (h *JobInActionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/jobs-in-action")
	g.POST("", h.Create)
	g.GET("/:id", h.GetByID)
	g.PATCH("/:id/status", h.Transition)
	g.DELETE("/:id", h.Deactivate)
}

// Create POST /jobs-in-action
func (h *JobInActionHandler) Create(c *gin.Context) {
	var req engagement.CreateJobInActionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ja, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, ja)
}

// GetByID GET /jobs-in-action/:id
func (h *JobInActionHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	ja, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ja)
}

// Transition moves the engagement forward. Reaching FINALIZADO also
// records the client's history entry.
// PATCH /jobs-in-action/:id/status
func (h *JobInActionHandler) Transition(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req engagement.TransitionRequest
	if !h.bindJSON(c, &req) {
		return
	}

	ja, err := h.service.Transition(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, ja)
}

// Deactivate DELETE /jobs-in-action/:id
func (h *JobInActionHandler) Deactivate(c *gin.Context) {
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
