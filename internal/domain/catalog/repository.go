package catalog

import (
	"context"

	"github.com/google/uuid"
)

// JobListing is a catalog row with its derived sales count
type JobListing struct {
	Job        Job
	SalesCount int64
}

// JobRepository defines the interface for job persistence
type JobRepository interface {
	// FindByID finds a job by its ID, active or not
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)

	// FindByIDForUpdate loads the job and holds a row lock until the
	// surrounding transaction ends. Rating mutations on one job serialize here.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Job, error)

	// Save creates or updates a job
	Save(ctx context.Context, job *Job) error

	// Search returns active jobs matching the query and the total match count
	Search(ctx context.Context, query JobQuery) ([]JobListing, int64, error)
}
