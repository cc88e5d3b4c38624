package engagement

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HistoryService reads and edits history entries. Entries are only ever
// created by HistoryRecorder.
type HistoryService struct {
	history engagement.HistoryRepository
	logger  *zap.Logger
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(history engagement.HistoryRepository, log *zap.Logger) *HistoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &HistoryService{history: history, logger: log}
}

// ListByClient returns the client's active entries, newest first
func (s *HistoryService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]HistoryEntryResponse, error) {
	items, err := s.history.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ToHistoryEntryResponses(items), nil
}

// ListByJob returns the job's active entries, newest first
func (s *HistoryService) ListByJob(ctx context.Context, jobID uuid.UUID) ([]HistoryEntryResponse, error) {
	items, err := s.history.FindByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return ToHistoryEntryResponses(items), nil
}

// UpdateComment replaces the comment. RequestedAt never changes.
func (s *HistoryService) UpdateComment(ctx context.Context, id uuid.UUID, req UpdateHistoryCommentRequest) (*HistoryEntryResponse, error) {
	entry, err := s.history.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := entry.UpdateComment(req.Comment); err != nil {
		return nil, err
	}
	if err := s.history.Save(ctx, entry); err != nil {
		return nil, err
	}

	resp := ToHistoryEntryResponse(entry)
	return &resp, nil
}

// Deactivate hides the entry from listings
func (s *HistoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	entry, err := s.history.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !entry.Active {
		return nil
	}
	entry.Deactivate()
	if err := s.history.Save(ctx, entry); err != nil {
		return err
	}

	logger.For(ctx, s.logger).Info("history entry deactivated", zap.String("history_id", id.String()))
	return nil
}
