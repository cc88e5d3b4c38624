package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wolf09/back-prof-sub000/internal/domain/rating"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// averageScale is the number of decimal places kept for job averages.
const averageScale = 4

// GormRatingRepository implements rating.RatingRepository using GORM
type GormRatingRepository struct {
	db *gorm.DB
}

// NewGormRatingRepository creates a new GormRatingRepository
func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

func (r *GormRatingRepository) FindByID(ctx context.Context, id uuid.UUID) (*rating.Rating, error) {
	var m models.RatingModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, rating.ErrRatingNotFound, "find rating")
	}
	return m.ToDomain(), nil
}

func (r *GormRatingRepository) FindByClientAndJob(ctx context.Context, clientID, jobID uuid.UUID) (*rating.Rating, error) {
	var m models.RatingModel
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND job_id = ?", clientID, jobID).
		First(&m).Error
	if err != nil {
		return nil, notFound(err, rating.ErrRatingNotFound, "find rating by client and job")
	}
	return m.ToDomain(), nil
}

func (r *GormRatingRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]rating.Rating, error) {
	return r.findWhere(ctx, "job_id = ?", jobID)
}

func (r *GormRatingRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]rating.Rating, error) {
	return r.findWhere(ctx, "client_id = ?", clientID)
}

func (r *GormRatingRepository) findWhere(ctx context.Context, cond string, arg any) ([]rating.Rating, error) {
	var rows []models.RatingModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Order("rated_at DESC, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	out := make([]rating.Rating, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

func (r *GormRatingRepository) ExistsByClientAndJob(ctx context.Context, clientID, jobID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.RatingModel{}).
		Where("client_id = ? AND job_id = ?", clientID, jobID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check rating exists: %w", err)
	}
	return n > 0, nil
}

// Create relies on the unique (client_id, job_id) index: a concurrent insert
// that slipped past ExistsByClientAndJob surfaces as ErrAlreadyRated.
func (r *GormRatingRepository) Create(ctx context.Context, rt *rating.Rating) error {
	if err := r.db.WithContext(ctx).Create(models.RatingModelFromDomain(rt)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return rating.ErrAlreadyRated
		}
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

// Update writes score and comment, checking the previous version.
func (r *GormRatingRepository) Update(ctx context.Context, rt *rating.Rating) error {
	res := r.db.WithContext(ctx).Model(&models.RatingModel{}).
		Where("id = ? AND version = ?", rt.ID, rt.Version-1).
		Updates(map[string]any{
			"score":      rt.Score,
			"comment":    rt.Comment,
			"version":    rt.Version,
			"updated_at": rt.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return versionConflict("Rating")
	}
	return nil
}

// Delete physically removes the rating.
func (r *GormRatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.RatingModel{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return rating.ErrRatingNotFound
	}
	return nil
}

type ratingSummaryRow struct {
	Average decimal.NullDecimal
	Total   int64
}

// SummaryByJob computes AVG(score) in the database. The average is rounded
// half away from zero to four places; no ratings yields zero.
func (r *GormRatingRepository) SummaryByJob(ctx context.Context, jobID uuid.UUID) (rating.Summary, error) {
	var row ratingSummaryRow
	err := r.db.WithContext(ctx).Model(&models.RatingModel{}).
		Select("AVG(score) AS average, COUNT(*) AS total").
		Where("job_id = ?", jobID).
		Scan(&row).Error
	if err != nil {
		return rating.Summary{}, fmt.Errorf("summarize ratings: %w", err)
	}

	avg := decimal.Zero
	if row.Average.Valid && row.Total > 0 {
		avg = row.Average.Decimal.Round(averageScale)
	}
	return rating.Summary{JobID: jobID, Average: avg, Count: row.Total}, nil
}

var _ rating.RatingRepository = (*GormRatingRepository)(nil)
