package engagement

import (
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeJobInAction = "JobInAction"

// Event type constants
const (
	EventTypeJobInActionCreated       = "JobInActionCreated"
	EventTypeJobInActionStatusChanged = "JobInActionStatusChanged"
	EventTypeJobFinished              = "JobFinished"
)

// JobInActionCreatedEvent is published when a client engages a job
type JobInActionCreatedEvent struct {
	shared.BaseDomainEvent
	JobInActionID uuid.UUID `json:"job_in_action_id"`
	JobID         uuid.UUID `json:"job_id"`
	ClientID      uuid.UUID `json:"client_id"`
}

// NewJobInActionCreatedEvent creates a new JobInActionCreatedEvent
func NewJobInActionCreatedEvent(ja *JobInAction) *JobInActionCreatedEvent {
	return &JobInActionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobInActionCreated, AggregateTypeJobInAction, ja.ID),
		JobInActionID:   ja.ID,
		JobID:           ja.JobID,
		ClientID:        ja.ClientID,
	}
}

// JobInActionStatusChangedEvent is published on every real status change
type JobInActionStatusChangedEvent struct {
	shared.BaseDomainEvent
	JobInActionID uuid.UUID `json:"job_in_action_id"`
	JobID         uuid.UUID `json:"job_id"`
	From          JobStatus `json:"from"`
	To            JobStatus `json:"to"`
	ChangedAt     time.Time `json:"changed_at"`
}

// NewJobInActionStatusChangedEvent creates a new JobInActionStatusChangedEvent
func NewJobInActionStatusChangedEvent(ja *JobInAction, from JobStatus) *JobInActionStatusChangedEvent {
	return &JobInActionStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobInActionStatusChanged, AggregateTypeJobInAction, ja.ID),
		JobInActionID:   ja.ID,
		JobID:           ja.JobID,
		From:            from,
		To:              ja.Status,
		ChangedAt:       ja.StatusChangedAt,
	}
}

// JobFinishedEvent is published when an engagement reaches FINALIZADO
type JobFinishedEvent struct {
	shared.BaseDomainEvent
	JobInActionID uuid.UUID `json:"job_in_action_id"`
	JobID         uuid.UUID `json:"job_id"`
	ClientID      uuid.UUID `json:"client_id"`
}

// NewJobFinishedEvent creates a new JobFinishedEvent
func NewJobFinishedEvent(ja *JobInAction) *JobFinishedEvent {
	return &JobFinishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobFinished, AggregateTypeJobInAction, ja.ID),
		JobInActionID:   ja.ID,
		JobID:           ja.JobID,
		ClientID:        ja.ClientID,
	}
}
