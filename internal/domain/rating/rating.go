package rating

import (
	"fmt"
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	MinScore = 1
	MaxScore = 5

	maxCommentLength = 2000
)

// Rating is one client's score for one job. A client rates a job at most once.
type Rating struct {
	shared.BaseAggregateRoot
	ClientID uuid.UUID
	JobID    uuid.UUID
	JobKind  catalog.JobKind
	Score    int
	RatedAt  time.Time
	Comment  string
}

// ValidateScore checks the score is within 1..5
func ValidateScore(score int) error {
	if score < MinScore || score > MaxScore {
		return shared.NewValidationError("INVALID_SCORE", fmt.Sprintf("Score must be between %d and %d", MinScore, MaxScore))
	}
	return nil
}

// NewRating creates a rating stamped with the current time
func NewRating(clientID, jobID uuid.UUID, kind catalog.JobKind, score int, comment string) (*Rating, error) {
	if clientID == uuid.Nil || jobID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_INPUT", "Client ID and job ID are required")
	}
	if err := ValidateScore(score); err != nil {
		return nil, err
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	r := &Rating{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ClientID:          clientID,
		JobID:             jobID,
		JobKind:           kind,
		Score:             score,
		Comment:           comment,
	}
	r.RatedAt = r.CreatedAt

	r.AddDomainEvent(NewRatingSubmittedEvent(r))
	return r, nil
}

// Revise changes the score and comment. Client, job and RatedAt stay fixed.
func (r *Rating) Revise(score int, comment string) error {
	if err := ValidateScore(score); err != nil {
		return err
	}
	if err := validateComment(comment); err != nil {
		return err
	}

	previous := r.Score
	r.Score = score
	r.Comment = comment
	r.MarkModified()

	r.AddDomainEvent(NewRatingRevisedEvent(r, previous))
	return nil
}

func validateComment(comment string) error {
	if len(comment) > maxCommentLength {
		return shared.NewValidationError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}
	return nil
}

// Errors raised while rating
var (
	ErrAlreadyRated      = shared.NewConflictError("ALREADY_RATED", "Client has already rated this job")
	ErrClientNotJobOwner = shared.NewNotFoundError("CLIENT_NOT_JOB_CREATOR", "Client is not the job's creator")
	ErrJobNotFinished    = shared.NewNotFoundError("JOB_NOT_FINISHED", "Job has not been finished")
	ErrRatingNotFound    = shared.NewNotFoundError("NOT_FOUND", "Rating not found")
)
