package testutil

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/application/txn"
	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/partner"
	"github.com/Wolf09/back-prof-sub000/internal/domain/rating"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockJobRepository is a mock implementation of catalog.JobRepository
type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Job), args.Error(1)
}

func (m *MockJobRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Job), args.Error(1)
}

func (m *MockJobRepository) Save(ctx context.Context, job *catalog.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) Search(ctx context.Context, q catalog.JobQuery) ([]catalog.JobListing, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]catalog.JobListing), args.Get(1).(int64), args.Error(2)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, c *partner.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockProfessionalRepository is a mock implementation of partner.ProfessionalRepository
type MockProfessionalRepository struct {
	mock.Mock
}

func (m *MockProfessionalRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Professional, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Professional), args.Error(1)
}

func (m *MockProfessionalRepository) Save(ctx context.Context, p *partner.Professional) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockJobInActionRepository is a mock implementation of engagement.JobInActionRepository
type MockJobInActionRepository struct {
	mock.Mock
}

func (m *MockJobInActionRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.JobInAction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.JobInAction), args.Error(1)
}

func (m *MockJobInActionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*engagement.JobInAction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.JobInAction), args.Error(1)
}

func (m *MockJobInActionRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]engagement.JobInAction, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.JobInAction), args.Error(1)
}

func (m *MockJobInActionRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]engagement.JobInAction, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.JobInAction), args.Error(1)
}

func (m *MockJobInActionRepository) Save(ctx context.Context, ja *engagement.JobInAction) error {
	args := m.Called(ctx, ja)
	return args.Error(0)
}

func (m *MockJobInActionRepository) ExistsFinishedForJob(ctx context.Context, jobID uuid.UUID) (bool, error) {
	args := m.Called(ctx, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobInActionRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

// MockHistoryRepository is a mock implementation of engagement.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*engagement.HistoryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engagement.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]engagement.HistoryEntry, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]engagement.HistoryEntry, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]engagement.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) CountByJobInAction(ctx context.Context, jobInActionID uuid.UUID) (int64, error) {
	args := m.Called(ctx, jobInActionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockHistoryRepository) Save(ctx context.Context, entry *engagement.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockRatingRepository is a mock implementation of rating.RatingRepository
type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) FindByID(ctx context.Context, id uuid.UUID) (*rating.Rating, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rating.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindByClientAndJob(ctx context.Context, clientID, jobID uuid.UUID) (*rating.Rating, error) {
	args := m.Called(ctx, clientID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rating.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]rating.Rating, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rating.Rating), args.Error(1)
}

func (m *MockRatingRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]rating.Rating, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rating.Rating), args.Error(1)
}

func (m *MockRatingRepository) ExistsByClientAndJob(ctx context.Context, clientID, jobID uuid.UUID) (bool, error) {
	args := m.Called(ctx, clientID, jobID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRatingRepository) Create(ctx context.Context, r *rating.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRatingRepository) Update(ctx context.Context, r *rating.Rating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRatingRepository) SummaryByJob(ctx context.Context, jobID uuid.UUID) (rating.Summary, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(rating.Summary), args.Error(1)
}

// Mocks bundles one mock per repository
type Mocks struct {
	Jobs          *MockJobRepository
	Clients       *MockClientRepository
	Professionals *MockProfessionalRepository
	JobsInAction  *MockJobInActionRepository
	History       *MockHistoryRepository
	Ratings       *MockRatingRepository
}

// NewMocks creates a fresh set of repository mocks
func NewMocks() *Mocks {
	return &Mocks{
		Jobs:          new(MockJobRepository),
		Clients:       new(MockClientRepository),
		Professionals: new(MockProfessionalRepository),
		JobsInAction:  new(MockJobInActionRepository),
		History:       new(MockHistoryRepository),
		Ratings:       new(MockRatingRepository),
	}
}

// Scope returns a txn.NoOpScope over the mocks
func (m *Mocks) Scope() *txn.NoOpScope {
	return txn.NewNoOpScope(m.Jobs, m.Clients, m.JobsInAction, m.History, m.Ratings)
}

// AssertExpectations asserts the expectations of every mock
func (m *Mocks) AssertExpectations(t mock.TestingT) {
	m.Jobs.AssertExpectations(t)
	m.Clients.AssertExpectations(t)
	m.Professionals.AssertExpectations(t)
	m.JobsInAction.AssertExpectations(t)
	m.History.AssertExpectations(t)
	m.Ratings.AssertExpectations(t)
}

var (
	_ catalog.JobRepository            = (*MockJobRepository)(nil)
	_ partner.ClientRepository         = (*MockClientRepository)(nil)
	_ partner.ProfessionalRepository   = (*MockProfessionalRepository)(nil)
	_ engagement.JobInActionRepository = (*MockJobInActionRepository)(nil)
	_ engagement.HistoryRepository     = (*MockHistoryRepository)(nil)
	_ rating.RatingRepository          = (*MockRatingRepository)(nil)
)
