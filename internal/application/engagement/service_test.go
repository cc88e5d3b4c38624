package engagement

import (
	"context"
	"testing"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/partner"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingMetrics struct {
	created     []string
	transitions [][2]string
	finished    int
}

func (m *recordingMetrics) RecordJobInActionCreated(_ context.Context, kind string) {
	m.created = append(m.created, kind)
}

func (m *recordingMetrics) RecordStatusTransition(_ context.Context, from, to string, finished bool) {
	m.transitions = append(m.transitions, [2]string{from, to})
	if finished {
		m.finished++
	}
}

type fixture struct {
	mocks   *testutil.Mocks
	events  *testutil.RecordingPublisher
	metrics *recordingMetrics
	svc     *Service
}

func newFixture() *fixture {
	mocks := testutil.NewMocks()
	events := testutil.NewRecordingPublisher()
	metrics := &recordingMetrics{}
	svc := NewService(mocks.Scope(), mocks.JobsInAction, NewHistoryRecorder(zap.NewNop()), events, zap.NewNop())
	svc.SetMetrics(metrics)
	return &fixture{mocks: mocks, events: events, metrics: metrics, svc: svc}
}

func companyJob(t *testing.T, clientID uuid.UUID) *catalog.Job {
	t.Helper()
	job, err := catalog.NewJob(catalog.JobKindCompany, uuid.New(), &clientID, "Audit", "", decimal.NewFromInt(100))
	require.NoError(t, err)
	job.ClearDomainEvents()
	return job
}

func activeClient(t *testing.T) *partner.Client {
	t.Helper()
	c, err := partner.NewClient("Client", "client@example.com")
	require.NoError(t, err)
	return c
}

func pendingJobInAction(t *testing.T, jobID, clientID uuid.UUID) *engagement.JobInAction {
	t.Helper()
	ja, err := engagement.NewJobInAction(jobID, clientID)
	require.NoError(t, err)
	ja.ClearDomainEvents()
	return ja
}

func TestService_Create_DefaultsToJobClient(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	client := activeClient(t)
	job := companyJob(t, client.ID)

	f.mocks.Jobs.On("FindByID", ctx, job.ID).Return(job, nil)
	f.mocks.Clients.On("FindByID", ctx, client.ID).Return(client, nil)
	f.mocks.JobsInAction.On("Save", ctx, mock.MatchedBy(func(ja *engagement.JobInAction) bool {
		return ja.JobID == job.ID && ja.ClientID == client.ID && ja.Status == engagement.JobStatusPending
	})).Return(nil)

	resp, err := f.svc.Create(ctx, CreateJobInActionRequest{JobID: job.ID})
	require.NoError(t, err)
	assert.Equal(t, "PENDIENTE", resp.Status)
	assert.True(t, resp.Active)
	assert.Equal(t, resp.CreatedAt, resp.StatusChangedAt)
	assert.Equal(t, []string{engagement.EventTypeJobInActionCreated}, f.events.Types())
	assert.Equal(t, []string{"company"}, f.metrics.created)
	f.mocks.AssertExpectations(t)
}

func TestService_Create_ExplicitClientWins(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job := companyJob(t, uuid.New())
	other := activeClient(t)

	f.mocks.Jobs.On("FindByID", ctx, job.ID).Return(job, nil)
	f.mocks.Clients.On("FindByID", ctx, other.ID).Return(other, nil)
	f.mocks.JobsInAction.On("Save", ctx, mock.Anything).Return(nil)

	resp, err := f.svc.Create(ctx, CreateJobInActionRequest{JobID: job.ID, ClientID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, resp.ClientID)
}

func TestService_Create_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("job not found", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.mocks.Jobs.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Create(ctx, CreateJobInActionRequest{JobID: id})
		assert.True(t, shared.IsNotFound(err))
		f.mocks.JobsInAction.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("inactive job", func(t *testing.T) {
		f := newFixture()
		job := companyJob(t, uuid.New())
		job.Deactivate()
		f.mocks.Jobs.On("FindByID", ctx, job.ID).Return(job, nil)

		_, err := f.svc.Create(ctx, CreateJobInActionRequest{JobID: job.ID})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("no client anywhere", func(t *testing.T) {
		f := newFixture()
		job, err := catalog.NewJob(catalog.JobKindIndependent, uuid.New(), nil, "Walk dog", "", decimal.NewFromInt(5))
		require.NoError(t, err)
		f.mocks.Jobs.On("FindByID", ctx, job.ID).Return(job, nil)

		_, err = f.svc.Create(ctx, CreateJobInActionRequest{JobID: job.ID})
		assert.True(t, shared.IsValidation(err))
		assert.Empty(t, f.events.Events())
	})

	t.Run("inactive client", func(t *testing.T) {
		f := newFixture()
		client := activeClient(t)
		client.Deactivate()
		job := companyJob(t, client.ID)
		f.mocks.Jobs.On("FindByID", ctx, job.ID).Return(job, nil)
		f.mocks.Clients.On("FindByID", ctx, client.ID).Return(client, nil)

		_, err := f.svc.Create(ctx, CreateJobInActionRequest{JobID: job.ID})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("nil job id", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Create(ctx, CreateJobInActionRequest{})
		assert.True(t, shared.IsValidation(err))
	})
}

func TestService_Transition_SameStatusIsNoOp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ja := pendingJobInAction(t, uuid.New(), uuid.New())
	before := ja.StatusChangedAt

	f.mocks.JobsInAction.On("FindByIDForUpdate", ctx, ja.ID).Return(ja, nil)

	resp, err := f.svc.Transition(ctx, ja.ID, TransitionRequest{Status: "pendiente"})
	require.NoError(t, err)
	assert.Equal(t, before, resp.StatusChangedAt)
	f.mocks.JobsInAction.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.mocks.History.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Empty(t, f.events.Events())
	assert.Empty(t, f.metrics.transitions)
}

func TestService_Transition_ToInProgress(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ja := pendingJobInAction(t, uuid.New(), uuid.New())

	f.mocks.JobsInAction.On("FindByIDForUpdate", ctx, ja.ID).Return(ja, nil)
	f.mocks.JobsInAction.On("Save", ctx, ja).Return(nil)

	resp, err := f.svc.Transition(ctx, ja.ID, TransitionRequest{Status: "EN_PROGRESO"})
	require.NoError(t, err)
	assert.Equal(t, "EN_PROGRESO", resp.Status)
	assert.Equal(t, 2, resp.Version)
	f.mocks.History.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	assert.Equal(t, [][2]string{{"PENDIENTE", "EN_PROGRESO"}}, f.metrics.transitions)
}

func TestService_Transition_FinishRecordsHistory(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	client := activeClient(t)
	job := companyJob(t, client.ID)
	ja := pendingJobInAction(t, job.ID, client.ID)

	f.mocks.JobsInAction.On("FindByIDForUpdate", ctx, ja.ID).Return(ja, nil)
	f.mocks.JobsInAction.On("Save", ctx, ja).Return(nil)
	f.mocks.Clients.On("FindByID", ctx, client.ID).Return(client, nil)
	f.mocks.Jobs.On("FindByID", ctx, job.ID).Return(job, nil)
	f.mocks.History.On("CountByJobInAction", ctx, ja.ID).Return(int64(0), nil)
	f.mocks.History.On("Save", ctx, mock.MatchedBy(func(h *engagement.HistoryEntry) bool {
		return h.JobInActionID == ja.ID &&
			h.ClientID == client.ID &&
			h.JobKind == catalog.JobKindCompany &&
			h.Comment == engagement.DefaultFinishedComment
	})).Return(nil).Once()

	resp, err := f.svc.Transition(ctx, ja.ID, TransitionRequest{Status: "FINALIZADO"})
	require.NoError(t, err)
	assert.Equal(t, "FINALIZADO", resp.Status)
	assert.Equal(t, 1, f.metrics.finished)
	assert.Equal(t, []string{engagement.EventTypeJobInActionStatusChanged, engagement.EventTypeJobFinished}, f.events.Types())
	f.mocks.AssertExpectations(t)
}

func TestService_Transition_FinishKeepsComment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	client := activeClient(t)
	job := companyJob(t, client.ID)
	ja := pendingJobInAction(t, job.ID, client.ID)

	f.mocks.JobsInAction.On("FindByIDForUpdate", ctx, ja.ID).Return(ja, nil)
	f.mocks.JobsInAction.On("Save", ctx, ja).Return(nil)
	f.mocks.Clients.On("FindByID", ctx, client.ID).Return(client, nil)
	f.mocks.Jobs.On("FindByID", ctx, job.ID).Return(job, nil)
	f.mocks.History.On("CountByJobInAction", ctx, ja.ID).Return(int64(0), nil)
	f.mocks.History.On("Save", ctx, mock.MatchedBy(func(h *engagement.HistoryEntry) bool {
		return h.Comment == "delivered on site"
	})).Return(nil)

	_, err := f.svc.Transition(ctx, ja.ID, TransitionRequest{Status: "FINALIZADO", Comment: "delivered on site"})
	require.NoError(t, err)
}

func TestService_Transition_FinishFailsWhenJobGone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	client := activeClient(t)
	job := companyJob(t, client.ID)
	job.Deactivate()
	ja := pendingJobInAction(t, job.ID, client.ID)

	f.mocks.JobsInAction.On("FindByIDForUpdate", ctx, ja.ID).Return(ja, nil)
	f.mocks.JobsInAction.On("Save", ctx, ja).Return(nil)
	f.mocks.Clients.On("FindByID", ctx, client.ID).Return(client, nil)
	f.mocks.Jobs.On("FindByID", ctx, job.ID).Return(job, nil)

	_, err := f.svc.Transition(ctx, ja.ID, TransitionRequest{Status: "FINALIZADO"})
	assert.True(t, shared.IsNotFound(err))
	assert.Empty(t, f.events.Events(), "nothing is published when the transaction fails")
	assert.Empty(t, f.metrics.transitions)
}

func TestService_Transition_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Transition(ctx, uuid.New(), TransitionRequest{Status: "DONE"})
		assert.True(t, shared.IsValidation(err))
		f.mocks.JobsInAction.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.mocks.JobsInAction.On("FindByIDForUpdate", ctx, id).Return(nil, shared.ErrNotFound)

		_, err := f.svc.Transition(ctx, id, TransitionRequest{Status: "EN_PROGRESO"})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("backwards", func(t *testing.T) {
		f := newFixture()
		ja := pendingJobInAction(t, uuid.New(), uuid.New())
		_, err := ja.TransitionTo(engagement.JobStatusCancelled)
		require.NoError(t, err)
		ja.ClearDomainEvents()
		f.mocks.JobsInAction.On("FindByIDForUpdate", ctx, ja.ID).Return(ja, nil)

		_, err = f.svc.Transition(ctx, ja.ID, TransitionRequest{Status: "EN_PROGRESO"})
		assert.True(t, shared.IsConflict(err))
		f.mocks.JobsInAction.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("concurrent modification", func(t *testing.T) {
		f := newFixture()
		ja := pendingJobInAction(t, uuid.New(), uuid.New())
		f.mocks.JobsInAction.On("FindByIDForUpdate", ctx, ja.ID).Return(ja, nil)
		f.mocks.JobsInAction.On("Save", ctx, ja).Return(shared.NewConflictError("CONCURRENT_MODIFICATION", "stale"))

		_, err := f.svc.Transition(ctx, ja.ID, TransitionRequest{Status: "CANCELADO"})
		assert.True(t, shared.IsConflict(err))
		assert.Empty(t, f.events.Events())
	})
}

func TestService_Deactivate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ja := pendingJobInAction(t, uuid.New(), uuid.New())

	f.mocks.JobsInAction.On("FindByIDForUpdate", ctx, ja.ID).Return(ja, nil)
	f.mocks.JobsInAction.On("Save", ctx, mock.MatchedBy(func(saved *engagement.JobInAction) bool {
		return !saved.Active && saved.Status == engagement.JobStatusPending
	})).Return(nil).Once()

	require.NoError(t, f.svc.Deactivate(ctx, ja.ID))
	// second call finds it inactive and writes nothing
	require.NoError(t, f.svc.Deactivate(ctx, ja.ID))
	f.mocks.History.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.mocks.AssertExpectations(t)
}

func TestService_Reads(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	jobID, clientID := uuid.New(), uuid.New()
	ja := pendingJobInAction(t, jobID, clientID)

	f.mocks.JobsInAction.On("FindByID", ctx, ja.ID).Return(ja, nil)
	f.mocks.JobsInAction.On("FindByJob", ctx, jobID).Return([]engagement.JobInAction{*ja}, nil)
	f.mocks.JobsInAction.On("FindByClient", ctx, clientID).Return([]engagement.JobInAction{}, nil)

	got, err := f.svc.GetByID(ctx, ja.ID)
	require.NoError(t, err)
	assert.Equal(t, ja.ID, got.ID)

	byJob, err := f.svc.ListByJob(ctx, jobID)
	require.NoError(t, err)
	assert.Len(t, byJob, 1)

	byClient, err := f.svc.ListByClient(ctx, clientID)
	require.NoError(t, err)
	assert.Empty(t, byClient)
}
