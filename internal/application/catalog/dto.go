package catalog

import (
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateJobRequest represents a request to publish a job in the catalog
type CreateJobRequest struct {
	Kind           string          `json:"kind" binding:"required,oneof=independent company"`
	ProfessionalID uuid.UUID       `json:"professional_id" binding:"required"`
	ClientID       *uuid.UUID      `json:"client_id"`
	Title          string          `json:"title" binding:"required,min=1,max=200"`
	Description    string          `json:"description" binding:"max=2000"`
	Price          decimal.Decimal `json:"price"`
}

// UpdateJobRequest replaces a job's title, description and price
type UpdateJobRequest struct {
	Title       string          `json:"title" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=2000"`
	Price       decimal.Decimal `json:"price"`
}

// JobSearchRequest is the query string of a catalog listing
type JobSearchRequest struct {
	Kind     string `form:"kind" binding:"omitempty,oneof=independent company"`
	Search   string `form:"search" binding:"max=200"`
	Bucket   string `form:"bucket"`
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=price created_at average_rating"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// ToQuery converts the request into a catalog.JobQuery
func (r JobSearchRequest) ToQuery() catalog.JobQuery {
	return catalog.JobQuery{
		Kind:       catalog.JobKind(r.Kind),
		Search:     r.Search,
		Bucket:     catalog.RatingBucket(r.Bucket),
		OrderBy:    catalog.JobSortField(r.OrderBy),
		OrderDir:   shared.SortDirection(r.OrderDir),
		Pagination: shared.Pagination{Page: r.Page, PageSize: r.PageSize},
	}
}

// JobResponse represents a job in API responses
type JobResponse struct {
	ID             uuid.UUID       `json:"id"`
	Kind           string          `json:"kind"`
	ProfessionalID uuid.UUID       `json:"professional_id"`
	ClientID       *uuid.UUID      `json:"client_id,omitempty"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	AverageRating  decimal.Decimal `json:"average_rating"`
	RatingBucket   string          `json:"rating_bucket"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Version        int             `json:"version"`
}

// JobListItem is one row of a catalog listing
type JobListItem struct {
	ID             uuid.UUID       `json:"id"`
	Kind           string          `json:"kind"`
	ProfessionalID uuid.UUID       `json:"professional_id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	AverageRating  decimal.Decimal `json:"average_rating"`
	RatingBucket   string          `json:"rating_bucket"`
	SalesCount     int64           `json:"sales_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToJobResponse converts a domain Job to JobResponse
func ToJobResponse(j *catalog.Job) JobResponse {
	return JobResponse{
		ID:             j.ID,
		Kind:           string(j.Kind),
		ProfessionalID: j.ProfessionalID,
		ClientID:       j.ClientID,
		Title:          j.Title,
		Description:    j.Description,
		Price:          j.Price,
		AverageRating:  j.AverageRating,
		RatingBucket:   string(catalog.BucketFor(j.AverageRating)),
		Active:         j.Active,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
		Version:        j.Version,
	}
}

// ToJobListItem converts a catalog.JobListing to JobListItem
func ToJobListItem(l catalog.JobListing) JobListItem {
	return JobListItem{
		ID:             l.Job.ID,
		Kind:           string(l.Job.Kind),
		ProfessionalID: l.Job.ProfessionalID,
		Title:          l.Job.Title,
		Description:    l.Job.Description,
		Price:          l.Job.Price,
		AverageRating:  l.Job.AverageRating,
		RatingBucket:   string(catalog.BucketFor(l.Job.AverageRating)),
		SalesCount:     l.SalesCount,
		CreatedAt:      l.Job.CreatedAt,
	}
}
