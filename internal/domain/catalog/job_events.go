package catalog

import (
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeJob = "Job"

// Event type constants
const (
	EventTypeJobCreated              = "JobCreated"
	EventTypeJobUpdated              = "JobUpdated"
	EventTypeJobDeactivated          = "JobDeactivated"
	EventTypeJobAverageRatingChanged = "JobAverageRatingChanged"
)

// JobCreatedEvent is published when a job is added to the catalog
type JobCreatedEvent struct {
	shared.BaseDomainEvent
	JobID          uuid.UUID       `json:"job_id"`
	Kind           JobKind         `json:"kind"`
	ProfessionalID uuid.UUID       `json:"professional_id"`
	Price          decimal.Decimal `json:"price"`
}

// NewJobCreatedEvent creates a new JobCreatedEvent
func NewJobCreatedEvent(job *Job) *JobCreatedEvent {
	return &JobCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCreated, AggregateTypeJob, job.ID),
		JobID:           job.ID,
		Kind:            job.Kind,
		ProfessionalID:  job.ProfessionalID,
		Price:           job.Price,
	}
}

// JobUpdatedEvent is published when title, description or price change
type JobUpdatedEvent struct {
	shared.BaseDomainEvent
	JobID uuid.UUID       `json:"job_id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// NewJobUpdatedEvent creates a new JobUpdatedEvent
func NewJobUpdatedEvent(job *Job) *JobUpdatedEvent {
	return &JobUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobUpdated, AggregateTypeJob, job.ID),
		JobID:           job.ID,
		Title:           job.Title,
		Price:           job.Price,
	}
}

// JobDeactivatedEvent is published when a job is logically deleted
type JobDeactivatedEvent struct {
	shared.BaseDomainEvent
	JobID uuid.UUID `json:"job_id"`
}

// NewJobDeactivatedEvent creates a new JobDeactivatedEvent
func NewJobDeactivatedEvent(job *Job) *JobDeactivatedEvent {
	return &JobDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobDeactivated, AggregateTypeJob, job.ID),
		JobID:           job.ID,
	}
}

// JobAverageRatingChangedEvent is published after a rating mutation moves the average
type JobAverageRatingChangedEvent struct {
	shared.BaseDomainEvent
	JobID           uuid.UUID       `json:"job_id"`
	PreviousAverage decimal.Decimal `json:"previous_average"`
	NewAverage      decimal.Decimal `json:"new_average"`
}

// NewJobAverageRatingChangedEvent creates a new JobAverageRatingChangedEvent
func NewJobAverageRatingChangedEvent(job *Job, previous decimal.Decimal) *JobAverageRatingChangedEvent {
	return &JobAverageRatingChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobAverageRatingChanged, AggregateTypeJob, job.ID),
		JobID:           job.ID,
		PreviousAverage: previous,
		NewAverage:      job.AverageRating,
	}
}
