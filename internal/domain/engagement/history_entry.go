package engagement

import (
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultFinishedComment is stored when a job finishes without a comment
const DefaultFinishedComment = "Job finished successfully"

const maxCommentLength = 2000

// HistoryEntry is the audit record written when an engagement finishes.
// RequestedAt never changes; only Comment and Active are mutable.
type HistoryEntry struct {
	shared.BaseEntity
	ClientID      uuid.UUID
	JobID         uuid.UUID
	JobInActionID uuid.UUID
	JobKind       catalog.JobKind
	RequestedAt   time.Time
	Comment       string
	Active        bool
}

// NewHistoryEntry creates an entry stamped with the current time
func NewHistoryEntry(clientID, jobID, jobInActionID uuid.UUID, kind catalog.JobKind, comment string) (*HistoryEntry, error) {
	if comment == "" {
		comment = DefaultFinishedComment
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	entry := &HistoryEntry{
		BaseEntity:    shared.NewBaseEntity(),
		ClientID:      clientID,
		JobID:         jobID,
		JobInActionID: jobInActionID,
		JobKind:       kind,
		Comment:       comment,
		Active:        true,
	}
	entry.RequestedAt = entry.CreatedAt
	return entry, nil
}

// UpdateComment replaces the free-text comment
func (h *HistoryEntry) UpdateComment(comment string) error {
	if err := validateComment(comment); err != nil {
		return err
	}
	h.Comment = comment
	h.Touch()
	return nil
}

// Deactivate logically deletes the entry
func (h *HistoryEntry) Deactivate() {
	if !h.Active {
		return
	}
	h.Active = false
	h.Touch()
}

func validateComment(comment string) error {
	if len(comment) > maxCommentLength {
		return shared.NewValidationError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}
	return nil
}
