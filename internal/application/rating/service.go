// Package rating keeps client ratings and each job's average consistent.
package rating

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/application/txn"
	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/rating"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/logger"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var (
	errJobNotFound    = shared.NewNotFoundError("NOT_FOUND", "Job not found")
	errClientNotFound = shared.NewNotFoundError("NOT_FOUND", "Client not found")
	errInvalidIDs     = shared.NewValidationError("INVALID_INPUT", "Client ID and job ID are required")
)

// Metrics is the subset of telemetry.BusinessMetrics the aggregator reports to
type Metrics interface {
	RecordRatingMutation(ctx context.Context, op telemetry.RatingOperation, jobKind string, score int, newAverage float64)
}

type nopMetrics struct{}

func (nopMetrics) RecordRatingMutation(context.Context, telemetry.RatingOperation, string, int, float64) {}

// Service stores ratings and recomputes the rated job's average in the same
// transaction. Every mutation locks the job row first, so mutations on one
// job serialize and no recompute reads a stale set of ratings.
type Service struct {
	scope   txn.Scope
	ratings rating.RatingRepository
	events  shared.EventPublisher
	metrics Metrics
	logger  *zap.Logger
}

// NewService creates a new rating Service
func NewService(scope txn.Scope, ratings rating.RatingRepository, events shared.EventPublisher, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		scope:   scope,
		ratings: ratings,
		events:  events,
		metrics: nopMetrics{},
		logger:  log,
	}
}

// SetMetrics makes the service report rating mutations to m
func (s *Service) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Create rates a job.
//
// A client rates a job once. For company jobs the client must be the one
// who commissioned it and at least one engagement of the job must have
// finished; independent jobs only need to exist.
func (s *Service) Create(ctx context.Context, req CreateRatingRequest) (*RatingResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "rating", "create",
		telemetry.SpanAttrJobID, req.JobID.String(),
		telemetry.SpanAttrClientID, req.ClientID.String(),
		telemetry.SpanAttrScore, req.Score)
	defer span.End()

	if req.ClientID == uuid.Nil || req.JobID == uuid.Nil {
		telemetry.RecordError(span, errInvalidIDs)
		return nil, errInvalidIDs
	}
	if err := rating.ValidateScore(req.Score); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var (
		r   *rating.Rating
		job *catalog.Job
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		var err error
		job, err = lockActiveJob(ctx, repos, req.JobID)
		if err != nil {
			return err
		}

		client, err := repos.Clients().FindByID(ctx, req.ClientID)
		if err != nil {
			return err
		}
		if !client.IsActive() {
			return errClientNotFound
		}

		rated, err := repos.Ratings().ExistsByClientAndJob(ctx, client.ID, job.ID)
		if err != nil {
			return err
		}
		if rated {
			return rating.ErrAlreadyRated
		}

		if job.IsCompany() {
			if !job.IsCommissionedBy(client.ID) {
				return rating.ErrClientNotJobOwner
			}
			finished, err := repos.JobsInAction().ExistsFinishedForJob(ctx, job.ID)
			if err != nil {
				return err
			}
			if !finished {
				return rating.ErrJobNotFinished
			}
		}

		r, err = rating.NewRating(client.ID, job.ID, job.Kind, req.Score, req.Comment)
		if err != nil {
			return err
		}
		if err := repos.Ratings().Create(ctx, r); err != nil {
			return err
		}
		return recomputeAverage(ctx, repos, job)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.afterMutation(ctx, span, telemetry.RatingOperationCreate, r, job)
	resp := mutationResponse(r, job)
	txn.PublishCommitted(ctx, s.events, s.logger, r, job)
	return &resp, nil
}

// Update revises a rating's score and comment and recomputes the job average.
// The client, the job and RatedAt never change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRatingRequest) (*RatingResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "rating", "update",
		telemetry.SpanAttrRatingID, id.String(),
		telemetry.SpanAttrScore, req.Score)
	defer span.End()

	if err := rating.ValidateScore(req.Score); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var (
		r   *rating.Rating
		job *catalog.Job
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		var err error
		r, err = repos.Ratings().FindByID(ctx, id)
		if err != nil {
			return err
		}
		job, err = lockJob(ctx, repos, r.JobID)
		if err != nil {
			return err
		}

		if err := r.Revise(req.Score, req.Comment); err != nil {
			return err
		}
		if err := repos.Ratings().Update(ctx, r); err != nil {
			return err
		}
		return recomputeAverage(ctx, repos, job)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.afterMutation(ctx, span, telemetry.RatingOperationUpdate, r, job)
	resp := mutationResponse(r, job)
	txn.PublishCommitted(ctx, s.events, s.logger, r, job)
	return &resp, nil
}

// Delete physically removes a rating and recomputes the job average.
// The returned summary reflects the job after the removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*SummaryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "rating", "delete",
		telemetry.SpanAttrRatingID, id.String())
	defer span.End()

	var (
		r       *rating.Rating
		job     *catalog.Job
		summary rating.Summary
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		var err error
		r, err = repos.Ratings().FindByID(ctx, id)
		if err != nil {
			return err
		}
		job, err = lockJob(ctx, repos, r.JobID)
		if err != nil {
			return err
		}

		if err := repos.Ratings().Delete(ctx, r.ID); err != nil {
			return err
		}
		r.AddDomainEvent(rating.NewRatingRemovedEvent(r))

		summary, err = repos.Ratings().SummaryByJob(ctx, job.ID)
		if err != nil {
			return err
		}
		return applyAverage(ctx, repos, job, summary)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.afterMutation(ctx, span, telemetry.RatingOperationDelete, r, job)
	resp := ToSummaryResponse(summary)
	txn.PublishCommitted(ctx, s.events, s.logger, r, job)
	return &resp, nil
}

// GetByID returns a rating
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*RatingResponse, error) {
	r, err := s.ratings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRatingResponse(r)
	return &resp, nil
}

// ListByJob returns a job's ratings, newest first, with their summary
func (s *Service) ListByJob(ctx context.Context, jobID uuid.UUID) (*JobRatingsResponse, error) {
	items, err := s.ratings.FindByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	summary, err := s.ratings.SummaryByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return &JobRatingsResponse{
		Summary: ToSummaryResponse(summary),
		Ratings: ToRatingResponses(items),
	}, nil
}

// ListByClient returns every rating a client gave, newest first
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]RatingResponse, error) {
	items, err := s.ratings.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ToRatingResponses(items), nil
}

// GetSummary returns the average and count of a job's ratings
func (s *Service) GetSummary(ctx context.Context, jobID uuid.UUID) (*SummaryResponse, error) {
	summary, err := s.ratings.SummaryByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	resp := ToSummaryResponse(summary)
	return &resp, nil
}

func (s *Service) afterMutation(ctx context.Context, span trace.Span, op telemetry.RatingOperation, r *rating.Rating, job *catalog.Job) {
	telemetry.SetAttributes(span, telemetry.SpanAttrAverage, job.AverageRating.String())
	s.metrics.RecordRatingMutation(ctx, op, string(job.Kind), r.Score, job.AverageRating.InexactFloat64())
	logger.For(ctx, s.logger).Info("rating stored",
		zap.String("operation", string(op)),
		zap.String("rating_id", r.ID.String()),
		zap.String("job_id", job.ID.String()),
		zap.Int("score", r.Score),
		zap.String("average", job.AverageRating.String()),
	)
}

// lockActiveJob locks the job row and rejects jobs that were logically deleted
func lockActiveJob(ctx context.Context, repos txn.Repositories, id uuid.UUID) (*catalog.Job, error) {
	job, err := lockJob(ctx, repos, id)
	if err != nil {
		return nil, err
	}
	if !job.IsActive() {
		return nil, errJobNotFound
	}
	return job, nil
}

func lockJob(ctx context.Context, repos txn.Repositories, id uuid.UUID) (*catalog.Job, error) {
	return repos.Jobs().FindByIDForUpdate(ctx, id)
}

func recomputeAverage(ctx context.Context, repos txn.Repositories, job *catalog.Job) error {
	summary, err := repos.Ratings().SummaryByJob(ctx, job.ID)
	if err != nil {
		return err
	}
	return applyAverage(ctx, repos, job, summary)
}

// applyAverage stores the summary's average on the locked job. The job row is
// only written when the average actually moved.
func applyAverage(ctx context.Context, repos txn.Repositories, job *catalog.Job, summary rating.Summary) error {
	v := job.Version
	if err := job.ApplyAverageRating(summary.Average); err != nil {
		return err
	}
	if job.Version == v {
		return nil
	}
	return repos.Jobs().Save(ctx, job)
}

func mutationResponse(r *rating.Rating, job *catalog.Job) RatingResponse {
	resp := ToRatingResponse(r)
	avg := job.AverageRating
	resp.JobAverageRating = &avg
	return resp
}
