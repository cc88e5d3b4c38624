package testutil

import (
	"context"
	"testing"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/partner"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Seeder writes fixture rows through the real repositories.
type Seeder struct {
	t   *testing.T
	ctx context.Context

	Clients       *persistence.GormClientRepository
	Professionals *persistence.GormProfessionalRepository
	Jobs          *persistence.GormJobRepository
}

// NewSeeder creates a Seeder on db
func NewSeeder(t *testing.T, db *gorm.DB) *Seeder {
	return &Seeder{
		t:             t,
		ctx:           context.Background(),
		Clients:       persistence.NewGormClientRepository(db),
		Professionals: persistence.NewGormProfessionalRepository(db),
		Jobs:          persistence.NewGormJobRepository(db),
	}
}

// Client stores an active client
func (s *Seeder) Client(name string) *partner.Client {
	s.t.Helper()
	c, err := partner.NewClient(name, uuid.NewString()+"@example.com")
	require.NoError(s.t, err)
	require.NoError(s.t, s.Clients.Save(s.ctx, c))
	return c
}

// Professional stores an active professional of the given kind
func (s *Seeder) Professional(kind partner.ProfessionalKind) *partner.Professional {
	s.t.Helper()
	p, err := partner.NewProfessional(kind, "Pro "+string(kind), uuid.NewString()+"@example.com")
	require.NoError(s.t, err)
	require.NoError(s.t, s.Professionals.Save(s.ctx, p))
	return p
}

// IndependentJob stores an active independent job priced at price
func (s *Seeder) IndependentJob(title, price string) *catalog.Job {
	s.t.Helper()
	pro := s.Professional(partner.ProfessionalKindIndependent)
	return s.job(catalog.JobKindIndependent, pro.ID, nil, title, price)
}

// CompanyJob stores an active company job commissioned by client
func (s *Seeder) CompanyJob(title, price string, client *partner.Client) *catalog.Job {
	s.t.Helper()
	pro := s.Professional(partner.ProfessionalKindCompany)
	id := client.ID
	return s.job(catalog.JobKindCompany, pro.ID, &id, title, price)
}

func (s *Seeder) job(kind catalog.JobKind, proID uuid.UUID, clientID *uuid.UUID, title, price string) *catalog.Job {
	job, err := catalog.NewJob(kind, proID, clientID, title, title+" description", decimal.RequireFromString(price))
	require.NoError(s.t, err)
	require.NoError(s.t, s.Jobs.Save(s.ctx, job))
	job.ClearDomainEvents()
	return job
}
