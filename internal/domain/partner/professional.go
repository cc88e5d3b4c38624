package partner

import (
	"strings"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
)

// ProfessionalKind distinguishes self-employed professionals from companies
type ProfessionalKind string

const (
	ProfessionalKindIndependent ProfessionalKind = "independent"
	ProfessionalKindCompany     ProfessionalKind = "company"
)

// IsValid checks if the professional kind is known
func (k ProfessionalKind) IsValid() bool {
	return k == ProfessionalKindIndependent || k == ProfessionalKindCompany
}

// Professional offers jobs in the catalog, either on their own or as a company
type Professional struct {
	shared.BaseAggregateRoot
	Kind   ProfessionalKind
	Name   string
	Email  string
	Active bool
}

// NewProfessional creates an active professional of the given kind
func NewProfessional(kind ProfessionalKind, name, email string) (*Professional, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError("INVALID_KIND", "Professional kind must be independent or company")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Professional{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Name:              strings.TrimSpace(name),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		Active:            true,
	}, nil
}

// IsActive reports whether the professional has not been logically deleted
func (p *Professional) IsActive() bool {
	return p.Active
}
