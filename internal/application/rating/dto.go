package rating

import (
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/rating"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateRatingRequest represents a request to rate a job
type CreateRatingRequest struct {
	ClientID uuid.UUID `json:"client_id" binding:"required"`
	JobID    uuid.UUID `json:"job_id" binding:"required"`
	Score    int       `json:"score" binding:"required,min=1,max=5"`
	Comment  string    `json:"comment" binding:"max=2000"`
}

// UpdateRatingRequest revises the score and comment of a rating
type UpdateRatingRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

// RatingResponse represents a rating in API responses.
// JobAverageRating is only set on mutations and carries the recomputed average.
type RatingResponse struct {
	ID               uuid.UUID        `json:"id"`
	ClientID         uuid.UUID        `json:"client_id"`
	JobID            uuid.UUID        `json:"job_id"`
	JobKind          string           `json:"job_kind"`
	Score            int              `json:"score"`
	Comment          string           `json:"comment"`
	RatedAt          time.Time        `json:"rated_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Version          int              `json:"version"`
	JobAverageRating *decimal.Decimal `json:"job_average_rating,omitempty"`
}

// SummaryResponse is the rating aggregate of one job
type SummaryResponse struct {
	JobID   uuid.UUID       `json:"job_id"`
	Average decimal.Decimal `json:"average"`
	Count   int64           `json:"count"`
}

// JobRatingsResponse lists a job's ratings with their summary
type JobRatingsResponse struct {
	Summary SummaryResponse  `json:"summary"`
	Ratings []RatingResponse `json:"ratings"`
}

// ToRatingResponse converts a domain Rating to RatingResponse
func ToRatingResponse(r *rating.Rating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		ClientID:  r.ClientID,
		JobID:     r.JobID,
		JobKind:   string(r.JobKind),
		Score:     r.Score,
		Comment:   r.Comment,
		RatedAt:   r.RatedAt,
		UpdatedAt: r.UpdatedAt,
		Version:   r.Version,
	}
}

// ToRatingResponses converts a slice of Rating
func ToRatingResponses(items []rating.Rating) []RatingResponse {
	out := make([]RatingResponse, len(items))
	for i := range items {
		out[i] = ToRatingResponse(&items[i])
	}
	return out
}

// ToSummaryResponse converts a rating.Summary to SummaryResponse
func ToSummaryResponse(s rating.Summary) SummaryResponse {
	return SummaryResponse{JobID: s.JobID, Average: s.Average, Count: s.Count}
}
