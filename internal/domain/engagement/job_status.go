package engagement

import (
	"strings"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
)

// JobStatus is the execution state of an engaged job
type JobStatus string

const (
	JobStatusPending    JobStatus = "PENDIENTE"
	JobStatusInProgress JobStatus = "EN_PROGRESO"
	JobStatusFinished   JobStatus = "FINALIZADO"
	JobStatusCancelled  JobStatus = "CANCELADO"
)

// IsValid checks if the status is a valid JobStatus
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusFinished, JobStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusFinished || s == JobStatusCancelled
}

// CanTransitionTo checks if the status can move forward to the target status
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusPending:
		return target == JobStatusInProgress || target == JobStatusFinished || target == JobStatusCancelled
	case JobStatusInProgress:
		return target == JobStatusFinished || target == JobStatusCancelled
	case JobStatusFinished, JobStatusCancelled:
		return false // Terminal states
	}
	return false
}

// ParseJobStatus validates a status name, ignoring case and surrounding space
func ParseJobStatus(s string) (JobStatus, error) {
	status := JobStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", shared.NewValidationError("INVALID_STATUS", "Status must be one of PENDIENTE, EN_PROGRESO, FINALIZADO, CANCELADO")
	}
	return status, nil
}
