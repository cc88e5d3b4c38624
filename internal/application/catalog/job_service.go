// Package catalog publishes jobs and serves the filtered catalog listings.
package catalog

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/application/txn"
	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/partner"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/logger"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errProfessionalNotFound = shared.NewNotFoundError("NOT_FOUND", "Professional not found")
	errClientNotFound       = shared.NewNotFoundError("NOT_FOUND", "Client not found")
	errKindMismatch         = shared.NewValidationError("INVALID_KIND", "Job kind must match the professional's kind")
)

// JobService handles job publication and maintenance
type JobService struct {
	jobs          catalog.JobRepository
	professionals partner.ProfessionalRepository
	clients       partner.ClientRepository
	events        shared.EventPublisher
	logger        *zap.Logger
}

// NewJobService creates a new JobService
func NewJobService(
	jobs catalog.JobRepository,
	professionals partner.ProfessionalRepository,
	clients partner.ClientRepository,
	events shared.EventPublisher,
	log *zap.Logger,
) *JobService {
	if log == nil {
		log = zap.NewNop()
	}
	return &JobService{
		jobs:          jobs,
		professionals: professionals,
		clients:       clients,
		events:        events,
		logger:        log,
	}
}

// Create publishes a new job with the initial average rating.
// The professional must be active and of the same kind as the job; company
// jobs also need an active commissioning client.
func (s *JobService) Create(ctx context.Context, req CreateJobRequest) (*JobResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "create_job",
		telemetry.SpanAttrJobKind, req.Kind)
	defer span.End()

	job, err := s.create(ctx, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrJobID, job.ID.String())
	logger.For(ctx, s.logger).Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.String("kind", string(job.Kind)),
		zap.String("price", job.Price.String()),
	)

	resp := ToJobResponse(job)
	txn.PublishCommitted(ctx, s.events, s.logger, job)
	return &resp, nil
}

func (s *JobService) create(ctx context.Context, req CreateJobRequest) (*catalog.Job, error) {
	kind := catalog.JobKind(req.Kind)
	if !kind.IsValid() {
		return nil, shared.NewValidationError("INVALID_KIND", "Job kind must be independent or company")
	}

	pro, err := s.professionals.FindByID(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}
	if !pro.IsActive() {
		return nil, errProfessionalNotFound
	}
	if string(pro.Kind) != string(kind) {
		return nil, errKindMismatch
	}

	clientID := req.ClientID
	if kind == catalog.JobKindIndependent {
		// independent jobs are offered to anyone
		clientID = nil
	}
	if clientID != nil {
		client, err := s.clients.FindByID(ctx, *clientID)
		if err != nil {
			return nil, err
		}
		if !client.IsActive() {
			return nil, errClientNotFound
		}
	}

	job, err := catalog.NewJob(kind, pro.ID, clientID, req.Title, req.Description, req.Price)
	if err != nil {
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

// GetByID returns a job, active or not
func (s *JobService) GetByID(ctx context.Context, id uuid.UUID) (*JobResponse, error) {
	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToJobResponse(job)
	return &resp, nil
}

// UpdateDetails changes the title, description and price of an active job
func (s *JobService) UpdateDetails(ctx context.Context, id uuid.UUID, req UpdateJobRequest) (*JobResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "update_job",
		telemetry.SpanAttrJobID, id.String())
	defer span.End()

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := job.UpdateDetails(req.Title, req.Description, req.Price); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.jobs.Save(ctx, job); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	logger.For(ctx, s.logger).Info("job updated", zap.String("job_id", id.String()))
	resp := ToJobResponse(job)
	txn.PublishCommitted(ctx, s.events, s.logger, job)
	return &resp, nil
}

// Deactivate logically deletes a job. Its ratings, engagements and history stay.
func (s *JobService) Deactivate(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "deactivate_job",
		telemetry.SpanAttrJobID, id.String())
	defer span.End()

	job, err := s.jobs.FindByID(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if !job.IsActive() {
		return nil
	}
	job.Deactivate()
	if err := s.jobs.Save(ctx, job); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.For(ctx, s.logger).Info("job deactivated", zap.String("job_id", id.String()))
	txn.PublishCommitted(ctx, s.events, s.logger, job)
	return nil
}
