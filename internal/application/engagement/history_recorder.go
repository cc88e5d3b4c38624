package engagement

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/application/txn"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/logger"
	"go.uber.org/zap"
)

var (
	errHistoryClientMissing = shared.NewNotFoundError("NOT_FOUND", "Client of the finished job not found")
	errHistoryJobMissing    = shared.NewNotFoundError("NOT_FOUND", "Finished job not found")
	errHistoryAlreadyExists = shared.NewConflictError("ALREADY_EXISTS", "History already recorded for this job in action")
)

// HistoryRecorder writes the audit entry of a finished engagement.
// It always runs inside the transaction that moved the engagement to FINALIZADO.
type HistoryRecorder struct {
	logger *zap.Logger
}

// NewHistoryRecorder creates a HistoryRecorder
func NewHistoryRecorder(log *zap.Logger) *HistoryRecorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &HistoryRecorder{logger: log}
}

// RecordFinalization stores one history entry for ja through repos.
// The client and job must still exist and be active. An empty comment
// falls back to engagement.DefaultFinishedComment.
func (r *HistoryRecorder) RecordFinalization(ctx context.Context, repos txn.Repositories, ja *engagement.JobInAction, comment string) (*engagement.HistoryEntry, error) {
	client, err := repos.Clients().FindByID(ctx, ja.ClientID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, errHistoryClientMissing
		}
		return nil, err
	}
	if !client.IsActive() {
		return nil, errHistoryClientMissing
	}

	job, err := repos.Jobs().FindByID(ctx, ja.JobID)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, errHistoryJobMissing
		}
		return nil, err
	}
	if !job.IsActive() {
		return nil, errHistoryJobMissing
	}

	recorded, err := repos.History().CountByJobInAction(ctx, ja.ID)
	if err != nil {
		return nil, err
	}
	if recorded > 0 {
		return nil, errHistoryAlreadyExists
	}

	entry, err := engagement.NewHistoryEntry(client.ID, job.ID, ja.ID, job.Kind, comment)
	if err != nil {
		return nil, err
	}
	if err := repos.History().Save(ctx, entry); err != nil {
		return nil, err
	}

	logger.For(ctx, r.logger).Info("history recorded",
		zap.String("history_id", entry.ID.String()),
		zap.String("job_in_action_id", ja.ID.String()),
		zap.String("job_id", job.ID.String()),
	)
	return entry, nil
}
