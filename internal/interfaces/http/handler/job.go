package handler

import (
	catalogapp "github.com/Wolf09/back-prof-sub000/internal/application/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/gin-gonic/gin"
)

// JobHandler serves the job catalog
type JobHandler struct {
	BaseHandler
	jobs  *catalogapp.JobService
	query *catalogapp.QueryService
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(jobs *catalogapp.JobService, query *catalogapp.QueryService) *JobHandler {
	return &JobHandler{jobs: jobs, query: query}
}

// RegisterRoutes mounts the job routes on rg
func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/jobs")
	jobs.POST("", h.Create)
	jobs.GET("", h.Search)
	jobs.GET("/ranking/:bucket", h.Ranking)
	jobs.GET("/:id", h.GetByID)
	jobs.PUT("/:id", h.Update)
	jobs.DELETE("/:id", h.Deactivate)
}

// Create publishes a job.
// POST /jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req catalogapp.CreateJobRequest
	if !h.bindJSON(c, &req) {
		return
	}

	job, err := h.jobs.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, job)
}

// GetByID GET /jobs/:id
func (h *JobHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	job, err := h.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// Update PUT /jobs/:id
func (h *JobHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateJobRequest
	if !h.bindJSON(c, &req) {
		return
	}

	job, err := h.jobs.UpdateDetails(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, job)
}

// Deactivate DELETE /jobs/:id
func (h *JobHandler) Deactivate(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.jobs.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Search lists active jobs filtered by kind, text and rating bucket.
// GET /jobs
func (h *JobHandler) Search(c *gin.Context) {
	var req catalogapp.JobSearchRequest
	if !h.bindQuery(c, &req) {
		return
	}

	page, err := h.query.Search(c.Request.Context(), req.ToQuery())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Ranking lists the jobs of one rating bucket, best rated first.
// GET /jobs/ranking/:bucket
func (h *JobHandler) Ranking(c *gin.Context) {
	var req catalogapp.JobSearchRequest
	if !h.bindQuery(c, &req) {
		return
	}

	q := req.ToQuery()
	page, err := h.query.ListByRatingBucket(c.Request.Context(), q.Kind, q.Search, catalog.RatingBucket(c.Param("bucket")), q.Pagination)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
