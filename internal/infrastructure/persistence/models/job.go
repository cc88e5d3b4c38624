package models

import (
	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobModel is the row of the jobs table.
type JobModel struct {
	AggregateModel
	Kind           string          `gorm:"type:varchar(20);not null;index:idx_jobs_active_kind,priority:2"`
	ProfessionalID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ClientID       *uuid.UUID      `gorm:"type:uuid;index"`
	Title          string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text;not null;default:''"`
	SearchText     string          `gorm:"type:text;not null;default:''"`
	Price          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AverageRating  decimal.Decimal `gorm:"type:decimal(6,4);not null;default:5"`
	Active         bool            `gorm:"not null;default:true;index:idx_jobs_active_kind,priority:1"`
}

func (JobModel) TableName() string { return "jobs" }

// ToDomain converts the row to a catalog.Job
func (m *JobModel) ToDomain() *catalog.Job {
	return &catalog.Job{
		BaseAggregateRoot: m.toAggregate(),
		Kind:              catalog.JobKind(m.Kind),
		ProfessionalID:    m.ProfessionalID,
		ClientID:          m.ClientID,
		Title:             m.Title,
		Description:       m.Description,
		Price:             m.Price,
		AverageRating:     m.AverageRating,
		Active:            m.Active,
	}
}

// FromDomain populates the row from a catalog.Job
func (m *JobModel) FromDomain(j *catalog.Job) {
	m.fromAggregate(j.BaseAggregateRoot)
	m.Kind = string(j.Kind)
	m.ProfessionalID = j.ProfessionalID
	m.ClientID = j.ClientID
	m.Title = j.Title
	m.Description = j.Description
	m.SearchText = catalog.SearchText(j.Title, j.Description)
	m.Price = j.Price
	m.AverageRating = j.AverageRating
	m.Active = j.Active
}

// JobModelFromDomain creates a row from a catalog.Job
func JobModelFromDomain(j *catalog.Job) *JobModel {
	m := &JobModel{}
	m.FromDomain(j)
	return m
}
