package engagement

import (
	"context"

	"github.com/google/uuid"
)

// JobInActionRepository defines the interface for job-in-action persistence
type JobInActionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*JobInAction, error)

	// FindByIDForUpdate loads the row under a lock held until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*JobInAction, error)

	FindByJob(ctx context.Context, jobID uuid.UUID) ([]JobInAction, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]JobInAction, error)

	// Save inserts a new row or updates an existing one, checking the version
	Save(ctx context.Context, ja *JobInAction) error

	// ExistsFinishedForJob reports whether any engagement of the job is FINALIZADO
	ExistsFinishedForJob(ctx context.Context, jobID uuid.UUID) (bool, error)

	// CountByJob counts engagements of the job, active or not
	CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
}

// HistoryRepository defines the interface for history entry persistence
type HistoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*HistoryEntry, error)
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]HistoryEntry, error)
	FindByJob(ctx context.Context, jobID uuid.UUID) ([]HistoryEntry, error)
	CountByJobInAction(ctx context.Context, jobInActionID uuid.UUID) (int64, error)
	Save(ctx context.Context, entry *HistoryEntry) error
}
