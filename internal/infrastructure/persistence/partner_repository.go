package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Wolf09/back-prof-sub000/internal/domain/partner"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	errClientNotFound       = shared.NewNotFoundError("NOT_FOUND", "Client not found")
	errProfessionalNotFound = shared.NewNotFoundError("NOT_FOUND", "Professional not found")
)

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	var m models.ClientModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, errClientNotFound, "find client")
	}
	return m.ToDomain(), nil
}

func (r *GormClientRepository) Save(ctx context.Context, c *partner.Client) error {
	m := &models.ClientModel{}
	m.FromDomain(c)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("ALREADY_EXISTS", "A client with this email already exists")
		}
		return fmt.Errorf("save client: %w", err)
	}
	return nil
}

// GormProfessionalRepository implements partner.ProfessionalRepository using GORM
type GormProfessionalRepository struct {
	db *gorm.DB
}

// NewGormProfessionalRepository creates a new GormProfessionalRepository
func NewGormProfessionalRepository(db *gorm.DB) *GormProfessionalRepository {
	return &GormProfessionalRepository{db: db}
}

func (r *GormProfessionalRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Professional, error) {
	var m models.ProfessionalModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, errProfessionalNotFound, "find professional")
	}
	return m.ToDomain(), nil
}

func (r *GormProfessionalRepository) Save(ctx context.Context, p *partner.Professional) error {
	m := &models.ProfessionalModel{}
	m.FromDomain(p)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("ALREADY_EXISTS", "A professional with this email already exists")
		}
		return fmt.Errorf("save professional: %w", err)
	}
	return nil
}

var (
	_ partner.ClientRepository       = (*GormClientRepository)(nil)
	_ partner.ProfessionalRepository = (*GormProfessionalRepository)(nil)
)
