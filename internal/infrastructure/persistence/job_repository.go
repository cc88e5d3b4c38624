package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var errJobNotFound = shared.NewNotFoundError("NOT_FOUND", "Job not found")

// salesCountExpr counts engagements of the outer jobs row.
const salesCountExpr = "(SELECT COUNT(*) FROM jobs_in_action jia WHERE jia.job_id = jobs.id) AS sales_count"

// GormJobRepository implements catalog.JobRepository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

func (r *GormJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Job, error) {
	var m models.JobModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, errJobNotFound, "find job")
	}
	return m.ToDomain(), nil
}

// FindByIDForUpdate issues SELECT ... FOR UPDATE. Outside a transaction the
// lock is released as soon as the statement ends.
func (r *GormJobRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Job, error) {
	var m models.JobModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, errJobNotFound, "lock job")
	}
	return m.ToDomain(), nil
}

// Save inserts a job at version 1 and otherwise updates it, requiring the
// stored version to be the one before the in-memory version.
func (r *GormJobRepository) Save(ctx context.Context, job *catalog.Job) error {
	m := models.JobModelFromDomain(job)
	if job.Version <= 1 {
		if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrAlreadyExists
			}
			return fmt.Errorf("create job: %w", err)
		}
		return nil
	}

	res := r.db.WithContext(ctx).Model(&models.JobModel{}).
		Where("id = ? AND version = ?", job.ID, job.Version-1).
		Updates(map[string]any{
			"title":          m.Title,
			"description":    m.Description,
			"search_text":    m.SearchText,
			"price":          m.Price,
			"average_rating": m.AverageRating,
			"active":         m.Active,
			"client_id":      m.ClientID,
			"version":        m.Version,
			"updated_at":     m.UpdatedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("update job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return versionConflict("Job")
	}
	return nil
}

type jobListingRow struct {
	models.JobModel
	SalesCount int64
}

// Search filters active jobs by kind, free text and rating bucket, then orders
// and pages them. The total ignores paging.
func (r *GormJobRepository) Search(ctx context.Context, q catalog.JobQuery) ([]catalog.JobListing, int64, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, 0, err
	}

	base := r.db.WithContext(ctx).Model(&models.JobModel{}).Scopes(jobFilters(q))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}
	if total == 0 {
		return []catalog.JobListing{}, 0, nil
	}

	var rows []jobListingRow
	err = base.Session(&gorm.Session{}).
		Select("jobs.*, " + salesCountExpr).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Table: "jobs", Name: string(q.OrderBy)}, Desc: q.OrderDir == shared.SortDesc},
			{Column: clause.Column{Table: "jobs", Name: "id"}},
		}}).
		Offset(q.Offset()).
		Limit(q.PageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("search jobs: %w", err)
	}

	out := make([]catalog.JobListing, len(rows))
	for i := range rows {
		out[i] = catalog.JobListing{Job: *rows[i].ToDomain(), SalesCount: rows[i].SalesCount}
	}
	return out, total, nil
}

func jobFilters(q catalog.JobQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("jobs.active = ?", true)
		if q.Kind != "" {
			db = db.Where("jobs.kind = ?", string(q.Kind))
		}
		if q.Search != "" {
			pattern := "%" + catalog.EscapeLike(q.Search) + "%"
			db = db.Where(`jobs.search_text LIKE ? ESCAPE '\'`, pattern)
		}
		if q.Bucket != "" {
			rng := q.Bucket.Range()
			db = db.Where("jobs.average_rating >= ?", rng.Min)
			if rng.MaxInclusive {
				db = db.Where("jobs.average_rating <= ?", rng.Max)
			} else {
				db = db.Where("jobs.average_rating < ?", rng.Max)
			}
		}
		return db
	}
}

var _ catalog.JobRepository = (*GormJobRepository)(nil)
