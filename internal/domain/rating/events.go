package rating

import (
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeRating = "Rating"

// Event type constants
const (
	EventTypeRatingSubmitted = "RatingSubmitted"
	EventTypeRatingRevised   = "RatingRevised"
	EventTypeRatingRemoved   = "RatingRemoved"
)

// RatingSubmittedEvent is published when a client rates a job
type RatingSubmittedEvent struct {
	shared.BaseDomainEvent
	RatingID uuid.UUID `json:"rating_id"`
	JobID    uuid.UUID `json:"job_id"`
	ClientID uuid.UUID `json:"client_id"`
	Score    int       `json:"score"`
}

// NewRatingSubmittedEvent creates a new RatingSubmittedEvent
func NewRatingSubmittedEvent(r *Rating) *RatingSubmittedEvent {
	return &RatingSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRatingSubmitted, AggregateTypeRating, r.ID),
		RatingID:        r.ID,
		JobID:           r.JobID,
		ClientID:        r.ClientID,
		Score:           r.Score,
	}
}

// RatingRevisedEvent is published when a rating's score or comment changes
type RatingRevisedEvent struct {
	shared.BaseDomainEvent
	RatingID      uuid.UUID `json:"rating_id"`
	JobID         uuid.UUID `json:"job_id"`
	PreviousScore int       `json:"previous_score"`
	Score         int       `json:"score"`
}

// NewRatingRevisedEvent creates a new RatingRevisedEvent
func NewRatingRevisedEvent(r *Rating, previous int) *RatingRevisedEvent {
	return &RatingRevisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRatingRevised, AggregateTypeRating, r.ID),
		RatingID:        r.ID,
		JobID:           r.JobID,
		PreviousScore:   previous,
		Score:           r.Score,
	}
}

// RatingRemovedEvent is published after a rating is deleted
type RatingRemovedEvent struct {
	shared.BaseDomainEvent
	RatingID uuid.UUID `json:"rating_id"`
	JobID    uuid.UUID `json:"job_id"`
}

// NewRatingRemovedEvent creates a new RatingRemovedEvent
func NewRatingRemovedEvent(r *Rating) *RatingRemovedEvent {
	return &RatingRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRatingRemoved, AggregateTypeRating, r.ID),
		RatingID:        r.ID,
		JobID:           r.JobID,
	}
}
