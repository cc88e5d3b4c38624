package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errJobInActionNotFound = shared.NewNotFoundError("NOT_FOUND", "Job in action not found")

// GormJobInActionRepository implements engagement.JobInActionRepository using GORM
type GormJobInActionRepository struct {
	db *gorm.DB
}

// NewGormJobInActionRepository creates a new GormJobInActionRepository
func NewGormJobInActionRepository(db *gorm.DB) *GormJobInActionRepository {
	return &GormJobInActionRepository{db: db}
}

func (r *GormJobInActionRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.JobInAction, error) {
	var m models.JobInActionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, errJobInActionNotFound, "find job in action")
	}
	return m.ToDomain(), nil
}

func (r *GormJobInActionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*engagement.JobInAction, error) {
	var m models.JobInActionModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, errJobInActionNotFound, "lock job in action")
	}
	return m.ToDomain(), nil
}

func (r *GormJobInActionRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]engagement.JobInAction, error) {
	return r.findWhere(ctx, "job_id = ?", jobID)
}

func (r *GormJobInActionRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]engagement.JobInAction, error) {
	return r.findWhere(ctx, "client_id = ?", clientID)
}

func (r *GormJobInActionRepository) findWhere(ctx context.Context, cond string, arg any) ([]engagement.JobInAction, error) {
	var rows []models.JobInActionModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Order("created_at DESC, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list jobs in action: %w", err)
	}
	out := make([]engagement.JobInAction, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

// Save inserts at version 1; later versions update only when the stored row
// is still at the previous version.
func (r *GormJobInActionRepository) Save(ctx context.Context, ja *engagement.JobInAction) error {
	m := models.JobInActionModelFromDomain(ja)
	if ja.Version <= 1 {
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrAlreadyExists
			}
			return fmt.Errorf("create job in action: %w", err)
		}
		return nil
	}

	res := r.db.WithContext(ctx).Model(&models.JobInActionModel{}).
		Where("id = ? AND version = ?", ja.ID, ja.Version-1).
		Updates(map[string]any{
			"status":            m.Status,
			"status_changed_at": m.StatusChangedAt,
			"active":            m.Active,
			"version":           m.Version,
			"updated_at":        m.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update job in action: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return versionConflict("Job in action")
	}
	return nil
}

func (r *GormJobInActionRepository) ExistsFinishedForJob(ctx context.Context, jobID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.JobInActionModel{}).
		Where("job_id = ? AND status = ?", jobID, string(engagement.JobStatusFinished)).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check finished job in action: %w", err)
	}
	return n > 0, nil
}

func (r *GormJobInActionRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.JobInActionModel{}).Where("job_id = ?", jobID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count jobs in action: %w", err)
	}
	return n, nil
}

var _ engagement.JobInActionRepository = (*GormJobInActionRepository)(nil)
