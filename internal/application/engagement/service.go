// Package engagement runs the job-in-action state machine and the history
// that finished engagements leave behind.
package engagement

import (
	"context"

	"github.com/Wolf09/back-prof-sub000/internal/application/txn"
	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/logger"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errJobNotFound    = shared.NewNotFoundError("NOT_FOUND", "Job not found")
	errClientNotFound = shared.NewNotFoundError("NOT_FOUND", "Client not found")
	errClientRequired = shared.NewValidationError("CLIENT_REQUIRED", "A client is required: the job has no client and none was given")
)

// Metrics is the subset of telemetry.BusinessMetrics the state machine reports to
type Metrics interface {
	RecordJobInActionCreated(ctx context.Context, jobKind string)
	RecordStatusTransition(ctx context.Context, from, to string, finished bool)
}

type nopMetrics struct{}

func (nopMetrics) RecordJobInActionCreated(context.Context, string) {}

func (nopMetrics) RecordStatusTransition(context.Context, string, string, bool) {}

// Service creates jobs in action and moves them through their states
type Service struct {
	scope        txn.Scope
	jobsInAction engagement.JobInActionRepository
	recorder     *HistoryRecorder
	events       shared.EventPublisher
	metrics      Metrics
	logger       *zap.Logger
}

// NewService creates a new Service. Reads go through jobsInAction directly;
// every write runs inside scope.
func NewService(
	scope txn.Scope,
	jobsInAction engagement.JobInActionRepository,
	recorder *HistoryRecorder,
	events shared.EventPublisher,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		scope:        scope,
		jobsInAction: jobsInAction,
		recorder:     recorder,
		events:       events,
		metrics:      nopMetrics{},
		logger:       log,
	}
}

// SetMetrics makes the service report engagements and transitions to m
func (s *Service) SetMetrics(m Metrics) {
	if m != nil {
		s.metrics = m
	}
}

// Create engages a job. The job must exist and be active; the client is the
// one given or else the job's own client, and must exist and be active.
func (s *Service) Create(ctx context.Context, req CreateJobInActionRequest) (*JobInActionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "engagement", "create",
		telemetry.SpanAttrJobID, req.JobID.String())
	defer span.End()

	if req.JobID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_JOB", "Job ID cannot be empty")
	}

	var (
		ja  *engagement.JobInAction
		job *catalog.Job
	)
	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		var err error
		job, err = repos.Jobs().FindByID(ctx, req.JobID)
		if err != nil {
			return err
		}
		if !job.IsActive() {
			return errJobNotFound
		}

		clientID := req.ClientID
		if clientID == nil || *clientID == uuid.Nil {
			clientID = job.ClientID
		}
		if clientID == nil {
			return errClientRequired
		}

		client, err := repos.Clients().FindByID(ctx, *clientID)
		if err != nil {
			return err
		}
		if !client.IsActive() {
			return errClientNotFound
		}

		ja, err = engagement.NewJobInAction(job.ID, client.ID)
		if err != nil {
			return err
		}
		return repos.JobsInAction().Save(ctx, ja)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrJobInActionID, ja.ID.String())
	s.metrics.RecordJobInActionCreated(ctx, string(job.Kind))
	logger.For(ctx, s.logger).Info("job in action created",
		zap.String("job_in_action_id", ja.ID.String()),
		zap.String("job_id", job.ID.String()),
		zap.String("client_id", ja.ClientID.String()),
	)

	resp := ToJobInActionResponse(ja)
	txn.PublishCommitted(ctx, s.events, s.logger, ja)
	return &resp, nil
}

// Transition moves the job in action to req.Status.
//
// Asking for the current status is a no-op: nothing is written and the change
// timestamp stays put. Moving backwards or out of a terminal state is a
// conflict. Reaching FINALIZADO records the history entry in the same
// transaction; the row lock taken here makes concurrent finalizations record
// exactly one entry.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, req TransitionRequest) (*JobInActionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "engagement", "transition",
		telemetry.SpanAttrJobInActionID, id.String(),
		telemetry.SpanAttrStatusTo, req.Status)
	defer span.End()

	target, err := engagement.ParseJobStatus(req.Status)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	var (
		ja       *engagement.JobInAction
		previous engagement.JobStatus
		changed  bool
	)
	err = s.scope.Execute(ctx, func(repos txn.Repositories) error {
		var err error
		ja, err = repos.JobsInAction().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		previous = ja.Status
		changed, err = ja.TransitionTo(target)
		if err != nil || !changed {
			return err
		}
		if err := repos.JobsInAction().Save(ctx, ja); err != nil {
			return err
		}
		if ja.IsFinished() {
			if _, err := s.recorder.RecordFinalization(ctx, repos, ja, req.Comment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if changed {
		telemetry.SetAttributes(span, telemetry.SpanAttrStatusFrom, previous.String())
		s.metrics.RecordStatusTransition(ctx, previous.String(), ja.Status.String(), ja.IsFinished())
		logger.For(ctx, s.logger).Info("job in action status changed",
			zap.String("job_in_action_id", ja.ID.String()),
			zap.String("from", previous.String()),
			zap.String("to", ja.Status.String()),
		)
	}

	resp := ToJobInActionResponse(ja)
	txn.PublishCommitted(ctx, s.events, s.logger, ja)
	return &resp, nil
}

// Deactivate logically deletes the job in action. Its status is left as is
// and no history is written.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "engagement", "deactivate",
		telemetry.SpanAttrJobInActionID, id.String())
	defer span.End()

	err := s.scope.Execute(ctx, func(repos txn.Repositories) error {
		ja, err := repos.JobsInAction().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		v := ja.Version
		ja.Deactivate()
		if ja.Version == v {
			return nil
		}
		return repos.JobsInAction().Save(ctx, ja)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	logger.For(ctx, s.logger).Info("job in action deactivated", zap.String("job_in_action_id", id.String()))
	return nil
}

// GetByID returns a job in action, active or not
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*JobInActionResponse, error) {
	ja, err := s.jobsInAction.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToJobInActionResponse(ja)
	return &resp, nil
}

// ListByJob returns every engagement of a job, newest first
func (s *Service) ListByJob(ctx context.Context, jobID uuid.UUID) ([]JobInActionResponse, error) {
	items, err := s.jobsInAction.FindByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return ToJobInActionResponses(items), nil
}

// ListByClient returns every engagement of a client, newest first
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID) ([]JobInActionResponse, error) {
	items, err := s.jobsInAction.FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ToJobInActionResponses(items), nil
}
