package persistence

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/application/txn"
	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/partner"
	"github.com/Wolf09/back-prof-sub000/internal/domain/rating"
	"gorm.io/gorm"
)

// GormTransactionScope implements txn.Scope on gorm.DB.Transaction.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute commits when fn returns nil and rolls back otherwise, including on panic.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos txn.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepositories{tx: tx})
	})
}

// gormRepositories hands out repositories bound to one transaction.
type gormRepositories struct {
	tx *gorm.DB
}

func (r *gormRepositories) Jobs() catalog.JobRepository {
	return NewGormJobRepository(r.tx)
}

func (r *gormRepositories) Clients() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormRepositories) JobsInAction() engagement.JobInActionRepository {
	return NewGormJobInActionRepository(r.tx)
}

func (r *gormRepositories) History() engagement.HistoryRepository {
	return NewGormHistoryRepository(r.tx)
}

func (r *gormRepositories) Ratings() rating.RatingRepository {
	return NewGormRatingRepository(r.tx)
}

var (
	_ txn.Scope        = (*GormTransactionScope)(nil)
	_ txn.Repositories = (*gormRepositories)(nil)
)
