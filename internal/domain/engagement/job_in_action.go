package engagement

import (
	"fmt"
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// JobInAction tracks the execution of one engagement of a catalog job.
// It is only ever logically deleted.
type JobInAction struct {
	shared.BaseAggregateRoot
	JobID           uuid.UUID
	ClientID        uuid.UUID
	Status          JobStatus
	StatusChangedAt time.Time
	Active          bool
}

// NewJobInAction creates a pending engagement of jobID for clientID
func NewJobInAction(jobID, clientID uuid.UUID) (*JobInAction, error) {
	if jobID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_JOB", "Job ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewValidationError("CLIENT_REQUIRED", "Client ID cannot be empty")
	}

	ja := &JobInAction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		JobID:             jobID,
		ClientID:          clientID,
		Status:            JobStatusPending,
		Active:            true,
	}
	ja.StatusChangedAt = ja.CreatedAt

	ja.AddDomainEvent(NewJobInActionCreatedEvent(ja))
	return ja, nil
}

// TransitionTo moves the engagement to target.
// It returns false without touching anything when target equals the current status.
func (ja *JobInAction) TransitionTo(target JobStatus) (bool, error) {
	if !target.IsValid() {
		return false, shared.NewValidationError("INVALID_STATUS", fmt.Sprintf("Unknown job status %q", target))
	}
	if target == ja.Status {
		return false, nil
	}
	if !ja.Active {
		return false, shared.NewConflictError("JOB_IN_ACTION_INACTIVE", "Cannot change the status of an inactive job in action")
	}
	if !ja.Status.CanTransitionTo(target) {
		return false, shared.NewConflictError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition job in action from %s to %s", ja.Status, target))
	}

	previous := ja.Status
	now := time.Now()
	ja.Status = target
	ja.StatusChangedAt = now
	ja.UpdatedAt = now
	ja.IncrementVersion()

	ja.AddDomainEvent(NewJobInActionStatusChangedEvent(ja, previous))
	if target == JobStatusFinished {
		ja.AddDomainEvent(NewJobFinishedEvent(ja))
	}
	return true, nil
}

// IsFinished reports whether the engagement reached FINALIZADO
func (ja *JobInAction) IsFinished() bool {
	return ja.Status == JobStatusFinished
}

// Deactivate logically deletes the engagement without touching its status
func (ja *JobInAction) Deactivate() {
	if !ja.Active {
		return
	}
	ja.Active = false
	ja.MarkModified()
}
