package txn

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/partner"
	"github.com/Wolf09/back-prof-sub000/internal/domain/rating"
)

// Scope runs a unit of work atomically.
// Everything done through the repositories handed to fn commits together or not at all.
type Scope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories gives access to every repository the core mutates, all bound
// to the same underlying transaction.
type Repositories interface {
	Jobs() catalog.JobRepository
	Clients() partner.ClientRepository
	JobsInAction() engagement.JobInActionRepository
	History() engagement.HistoryRepository
	Ratings() rating.RatingRepository
}

// NoOpScope runs fn directly against the given repositories without a transaction.
// Used by unit tests with mocked repositories.
type NoOpScope struct {
	jobs         catalog.JobRepository
	clients      partner.ClientRepository
	jobsInAction engagement.JobInActionRepository
	history      engagement.HistoryRepository
	ratings      rating.RatingRepository
}

// NewNoOpScope creates a NoOpScope with the given repositories
func NewNoOpScope(
	jobs catalog.JobRepository,
	clients partner.ClientRepository,
	jobsInAction engagement.JobInActionRepository,
	history engagement.HistoryRepository,
	ratings rating.RatingRepository,
) *NoOpScope {
	return &NoOpScope{
		jobs:         jobs,
		clients:      clients,
		jobsInAction: jobsInAction,
		history:      history,
		ratings:      ratings,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

func (s *NoOpScope) Jobs() catalog.JobRepository                    { return s.jobs }
func (s *NoOpScope) Clients() partner.ClientRepository              { return s.clients }
func (s *NoOpScope) JobsInAction() engagement.JobInActionRepository { return s.jobsInAction }
func (s *NoOpScope) History() engagement.HistoryRepository          { return s.history }
func (s *NoOpScope) Ratings() rating.RatingRepository               { return s.ratings }

var _ Scope = (*NoOpScope)(nil)
var _ Repositories = (*NoOpScope)(nil)
