package catalog

import (
	"strings"

	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobKind tells which kind of professional offers a job
type JobKind string

const (
	JobKindIndependent JobKind = "independent"
	JobKindCompany     JobKind = "company"
)

// IsValid checks if the job kind is known
func (k JobKind) IsValid() bool {
	return k == JobKindIndependent || k == JobKindCompany
}

// InitialAverageRating is the average a job starts with before anyone rates it
var InitialAverageRating = decimal.NewFromInt(5)

var maxAverageRating = decimal.NewFromInt(5)

const maxTitleLength = 200

// Job is an offered service in the catalog.
// It is the aggregate root for pricing and for the rating average.
type Job struct {
	shared.BaseAggregateRoot
	Kind           JobKind
	ProfessionalID uuid.UUID
	// ClientID is the client who commissioned the job. Required for company jobs.
	ClientID      *uuid.UUID
	Title         string
	Description   string
	Price         decimal.Decimal
	AverageRating decimal.Decimal
	Active        bool
}

// NewJob creates an active job with the initial average rating
func NewJob(kind JobKind, professionalID uuid.UUID, clientID *uuid.UUID, title, description string, price decimal.Decimal) (*Job, error) {
	if !kind.IsValid() {
		return nil, shared.NewValidationError("INVALID_KIND", "Job kind must be independent or company")
	}
	if professionalID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PROFESSIONAL", "Professional ID cannot be empty")
	}
	if kind == JobKindCompany && (clientID == nil || *clientID == uuid.Nil) {
		return nil, shared.NewValidationError("CLIENT_REQUIRED", "Company jobs must reference the commissioning client")
	}
	if err := validateDetails(title, price); err != nil {
		return nil, err
	}

	job := &Job{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		ProfessionalID:    professionalID,
		ClientID:          clientID,
		Title:             strings.TrimSpace(title),
		Description:       description,
		Price:             price.Round(2),
		AverageRating:     InitialAverageRating,
		Active:            true,
	}
	job.AddDomainEvent(NewJobCreatedEvent(job))

	return job, nil
}

// IsCompany reports whether the job belongs to a company
func (j *Job) IsCompany() bool {
	return j.Kind == JobKindCompany
}

// IsActive reports whether the job has not been logically deleted
func (j *Job) IsActive() bool {
	return j.Active
}

// IsCommissionedBy reports whether clientID is the job's commissioning client
func (j *Job) IsCommissionedBy(clientID uuid.UUID) bool {
	return j.ClientID != nil && *j.ClientID == clientID
}

// UpdateDetails changes the title, description and price
func (j *Job) UpdateDetails(title, description string, price decimal.Decimal) error {
	if !j.Active {
		return shared.NewConflictError("JOB_INACTIVE", "Cannot update an inactive job")
	}
	if err := validateDetails(title, price); err != nil {
		return err
	}

	j.Title = strings.TrimSpace(title)
	j.Description = description
	j.Price = price.Round(2)
	j.MarkModified()

	j.AddDomainEvent(NewJobUpdatedEvent(j))
	return nil
}

// Deactivate logically deletes the job. Ratings and history keep referencing it.
func (j *Job) Deactivate() {
	if !j.Active {
		return
	}
	j.Active = false
	j.MarkModified()

	j.AddDomainEvent(NewJobDeactivatedEvent(j))
}

// ApplyAverageRating stores a freshly computed rating average.
// The value is rounded to four decimal places; nothing happens when it is unchanged.
func (j *Job) ApplyAverageRating(avg decimal.Decimal) error {
	avg = avg.Round(4)
	if avg.IsNegative() || avg.GreaterThan(maxAverageRating) {
		return shared.NewValidationError("INVALID_AVERAGE", "Average rating must be between 0 and 5")
	}
	if avg.Equal(j.AverageRating) {
		return nil
	}

	previous := j.AverageRating
	j.AverageRating = avg
	j.MarkModified()

	j.AddDomainEvent(NewJobAverageRatingChangedEvent(j, previous))
	return nil
}

func validateDetails(title string, price decimal.Decimal) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewValidationError("INVALID_TITLE", "Job title cannot be empty")
	}
	if len(title) > maxTitleLength {
		return shared.NewValidationError("INVALID_TITLE", "Job title cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", "Price cannot be negative")
	}
	return nil
}
