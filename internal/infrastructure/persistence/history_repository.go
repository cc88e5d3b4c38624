package persistence

import (
	"context"
	"fmt"

	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errHistoryNotFound = shared.NewNotFoundError("NOT_FOUND", "History entry not found")

// GormHistoryRepository implements engagement.HistoryRepository using GORM
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

func (r *GormHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.HistoryEntry, error) {
	var m models.HistoryEntryModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, errHistoryNotFound, "find history entry")
	}
	return m.ToDomain(), nil
}

// FindByClient lists the client's active entries, newest first.
func (r *GormHistoryRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]engagement.HistoryEntry, error) {
	return r.findActive(ctx, "client_id = ?", clientID)
}

// FindByJob lists the job's active entries, newest first.
func (r *GormHistoryRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]engagement.HistoryEntry, error) {
	return r.findActive(ctx, "job_id = ?", jobID)
}

func (r *GormHistoryRepository) findActive(ctx context.Context, cond string, arg any) ([]engagement.HistoryEntry, error) {
	var rows []models.HistoryEntryModel
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Where("active = ?", true).
		Order("requested_at DESC, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	out := make([]engagement.HistoryEntry, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormHistoryRepository) CountByJobInAction(ctx context.Context, jobInActionID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.HistoryEntryModel{}).
		Where("job_in_action_id = ?", jobInActionID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// Save upserts the entry by primary key.
func (r *GormHistoryRepository) Save(ctx context.Context, entry *engagement.HistoryEntry) error {
	if err := r.db.WithContext(ctx).Save(models.HistoryEntryModelFromDomain(entry)).Error; err != nil {
		return fmt.Errorf("save history entry: %w", err)
	}
	return nil
}

var _ engagement.HistoryRepository = (*GormHistoryRepository)(nil)
