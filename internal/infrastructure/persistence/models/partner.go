package models

import (
	"github.com/Wolf09/back-prof-sub000/internal/domain/partner"
)

// ClientModel is the row of the clients table.
type ClientModel struct {
	AggregateModel
	Name   string `gorm:"type:varchar(200);not null"`
	Email  string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Active bool   `gorm:"not null;default:true"`
}

func (ClientModel) TableName() string { return "clients" }

func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseAggregateRoot: m.toAggregate(),
		Name:              m.Name,
		Email:             m.Email,
		Active:            m.Active,
	}
}

func (m *ClientModel) FromDomain(c *partner.Client) {
	m.fromAggregate(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Active = c.Active
}

// ProfessionalModel is the row of the professionals table.
type ProfessionalModel struct {
	AggregateModel
	Kind   string `gorm:"type:varchar(20);not null"`
	Name   string `gorm:"type:varchar(200);not null"`
	Email  string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Active bool   `gorm:"not null;default:true"`
}

func (ProfessionalModel) TableName() string { return "professionals" }

func (m *ProfessionalModel) ToDomain() *partner.Professional {
	return &partner.Professional{
		BaseAggregateRoot: m.toAggregate(),
		Kind:              partner.ProfessionalKind(m.Kind),
		Name:              m.Name,
		Email:             m.Email,
		Active:            m.Active,
	}
}

func (m *ProfessionalModel) FromDomain(p *partner.Professional) {
	m.fromAggregate(p.BaseAggregateRoot)
	m.Kind = string(p.Kind)
	m.Name = p.Name
	m.Email = p.Email
	m.Active = p.Active
}

// All lists every model, in dependency order, for AutoMigrate in tests.
func All() []any {
	return []any{
		&ClientModel{},
		&ProfessionalModel{},
		&JobModel{},
		&JobInActionModel{},
		&HistoryEntryModel{},
		&RatingModel{},
	}
}
