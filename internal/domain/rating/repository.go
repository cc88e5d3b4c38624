package rating

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary aggregates the ratings of one job
type Summary struct {
	JobID   uuid.UUID
	Average decimal.Decimal
	Count   int64
}

// RatingRepository defines the interface for rating persistence
type RatingRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Rating, error)
	FindByClientAndJob(ctx context.Context, clientID, jobID uuid.UUID) (*Rating, error)
	FindByJob(ctx context.Context, jobID uuid.UUID) ([]Rating, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]Rating, error)

	ExistsByClientAndJob(ctx context.Context, clientID, jobID uuid.UUID) (bool, error)

	// Create inserts a new rating. A second rating for the same client and job
	// fails with ErrAlreadyRated, whatever the interleaving.
	Create(ctx context.Context, r *Rating) error
	Update(ctx context.Context, r *Rating) error
	Delete(ctx context.Context, id uuid.UUID) error

	// SummaryByJob returns the mean score rounded to four places and the count.
	// A job without ratings has a zero average.
	SummaryByJob(ctx context.Context, jobID uuid.UUID) (Summary, error)
}
