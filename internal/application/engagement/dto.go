package engagement

import (
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/google/uuid"
)

// CreateJobInActionRequest engages a job. ClientID defaults to the job's client.
type CreateJobInActionRequest struct {
	JobID    uuid.UUID  `json:"job_id" binding:"required"`
	ClientID *uuid.UUID `json:"client_id"`
}

// TransitionRequest moves a job in action to Status.
// Comment is stored in the history entry when Status is FINALIZADO.
type TransitionRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment" binding:"max=2000"`
}

// UpdateHistoryCommentRequest replaces a history entry's comment
type UpdateHistoryCommentRequest struct {
	Comment string `json:"comment" binding:"max=2000"`
}

// JobInActionResponse represents a job in action in API responses
type JobInActionResponse struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"job_id"`
	ClientID        uuid.UUID `json:"client_id"`
	Status          string    `json:"status"`
	StatusChangedAt time.Time `json:"status_changed_at"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Version         int       `json:"version"`
}

// HistoryEntryResponse represents a history entry in API responses
type HistoryEntryResponse struct {
	ID            uuid.UUID `json:"id"`
	ClientID      uuid.UUID `json:"client_id"`
	JobID         uuid.UUID `json:"job_id"`
	JobInActionID uuid.UUID `json:"job_in_action_id"`
	JobKind       string    `json:"job_kind"`
	RequestedAt   time.Time `json:"requested_at"`
	Comment       string    `json:"comment"`
	Active        bool      `json:"active"`
}

// ToJobInActionResponse converts a domain JobInAction to JobInActionResponse
func ToJobInActionResponse(ja *engagement.JobInAction) JobInActionResponse {
	return JobInActionResponse{
		ID:              ja.ID,
		JobID:           ja.JobID,
		ClientID:        ja.ClientID,
		Status:          ja.Status.String(),
		StatusChangedAt: ja.StatusChangedAt,
		Active:          ja.Active,
		CreatedAt:       ja.CreatedAt,
		UpdatedAt:       ja.UpdatedAt,
		Version:         ja.Version,
	}
}

// ToJobInActionResponses converts a slice of JobInAction
func ToJobInActionResponses(items []engagement.JobInAction) []JobInActionResponse {
	out := make([]JobInActionResponse, len(items))
	for i := range items {
		out[i] = ToJobInActionResponse(&items[i])
	}
	return out
}

// ToHistoryEntryResponse converts a domain HistoryEntry to HistoryEntryResponse
func ToHistoryEntryResponse(h *engagement.HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:            h.ID,
		ClientID:      h.ClientID,
		JobID:         h.JobID,
		JobInActionID: h.JobInActionID,
		JobKind:       string(h.JobKind),
		RequestedAt:   h.RequestedAt,
		Comment:       h.Comment,
		Active:        h.Active,
	}
}

// ToHistoryEntryResponses converts a slice of HistoryEntry
func ToHistoryEntryResponses(items []engagement.HistoryEntry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, len(items))
	for i := range items {
		out[i] = ToHistoryEntryResponse(&items[i])
	}
	return out
}
