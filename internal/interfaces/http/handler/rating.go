package handler

import (
	"github.com/Wolf09/back-prof-sub000/internal/application/rating"
	"github.com/gin-gonic/gin"
)

// RatingHandler serves client ratings. Every mutation answers with the
// job's recomputed average.
type RatingHandler struct {
	BaseHandler
	service *rating.Service
}

// NewRatingHandler creates a new RatingHandler
func NewRatingHandler(service *rating.Service) *RatingHandler {
	return &RatingHandler{service: service}
}

// RegisterRoutes mounts the rating routes on rg
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	ratings := rg.Group("/ratings")
	ratings.POST("", h.Create)
	ratings.GET("/:id", h.GetByID)
	ratings.PUT("/:id", h.Update)
	ratings.DELETE("/:id", h.Delete)

	rg.GET("/jobs/:id/ratings", h.ListByJob)
}

// Create POST /ratings
func (h *RatingHandler) Create(c *gin.Context) {
	var req rating.CreateRatingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, r)
}

// GetByID GET /ratings/:id
func (h *RatingHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Update PUT /ratings/:id
func (h *RatingHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req rating.UpdateRatingRequest
	if !h.bindJSON(c, &req) {
		return
	}

	r, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, r)
}

// Delete removes the rating and returns the job's new summary.
// DELETE /ratings/:id
func (h *RatingHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ListByJob GET /jobs/:id/ratings
func (h *RatingHandler) ListByJob(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.service.ListByJob(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
