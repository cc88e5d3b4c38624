package engagement

import (
	"testing"
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPending(t *testing.T) *JobInAction {
	t.Helper()
	ja, err := NewJobInAction(uuid.New(), uuid.New())
	require.NoError(t, err)
	ja.ClearDomainEvents()
	return ja
}

func TestJobStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from JobStatus
		to   JobStatus
		want bool
	}{
		{JobStatusPending, JobStatusInProgress, true},
		{JobStatusPending, JobStatusFinished, true},
		{JobStatusPending, JobStatusCancelled, true},
		{JobStatusInProgress, JobStatusFinished, true},
		{JobStatusInProgress, JobStatusCancelled, true},
		{JobStatusInProgress, JobStatusPending, false},
		{JobStatusFinished, JobStatusPending, false},
		{JobStatusFinished, JobStatusCancelled, false},
		{JobStatusCancelled, JobStatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseJobStatus(t *testing.T) {
	s, err := ParseJobStatus(" finalizado ")
	require.NoError(t, err)
	assert.Equal(t, JobStatusFinished, s)

	_, err = ParseJobStatus("DONE")
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestNewJobInAction(t *testing.T) {
	jobID, clientID := uuid.New(), uuid.New()
	ja, err := NewJobInAction(jobID, clientID)
	require.NoError(t, err)

	assert.Equal(t, JobStatusPending, ja.Status)
	assert.True(t, ja.Active)
	assert.Equal(t, ja.CreatedAt, ja.StatusChangedAt)

	events := ja.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeJobInActionCreated, events[0].EventType())

	_, err = NewJobInAction(jobID, uuid.Nil)
	assert.True(t, shared.IsValidation(err))
}

func TestJobInAction_TransitionTo(t *testing.T) {
	t.Run("same status is a pure no-op", func(t *testing.T) {
		ja := newPending(t)
		before := ja.StatusChangedAt

		changed, err := ja.TransitionTo(JobStatusPending)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, before, ja.StatusChangedAt)
		assert.Equal(t, 1, ja.GetVersion())
		assert.Empty(t, ja.GetDomainEvents())
	})

	t.Run("forward move stamps the change", func(t *testing.T) {
		ja := newPending(t)
		before := ja.StatusChangedAt
		time.Sleep(time.Millisecond)

		changed, err := ja.TransitionTo(JobStatusInProgress)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, JobStatusInProgress, ja.Status)
		assert.True(t, ja.StatusChangedAt.After(before))
		assert.Equal(t, 2, ja.GetVersion())

		events := ja.GetDomainEvents()
		require.Len(t, events, 1)
		event := events[0].(*JobInActionStatusChangedEvent)
		assert.Equal(t, JobStatusPending, event.From)
		assert.Equal(t, JobStatusInProgress, event.To)
	})

	t.Run("finishing emits JobFinished", func(t *testing.T) {
		ja := newPending(t)
		_, err := ja.TransitionTo(JobStatusFinished)
		require.NoError(t, err)
		assert.True(t, ja.IsFinished())

		events := ja.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeJobFinished, events[1].EventType())
	})

	t.Run("backward move is a conflict", func(t *testing.T) {
		ja := newPending(t)
		_, err := ja.TransitionTo(JobStatusFinished)
		require.NoError(t, err)
		changedAt := ja.StatusChangedAt

		_, err = ja.TransitionTo(JobStatusPending)
		require.Error(t, err)
		assert.True(t, shared.IsConflict(err))
		assert.Equal(t, JobStatusFinished, ja.Status)
		assert.Equal(t, changedAt, ja.StatusChangedAt)
	})

	t.Run("unknown status is a validation error", func(t *testing.T) {
		ja := newPending(t)
		_, err := ja.TransitionTo("DONE")
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("inactive engagement cannot move", func(t *testing.T) {
		ja := newPending(t)
		ja.Deactivate()
		_, err := ja.TransitionTo(JobStatusInProgress)
		assert.True(t, shared.IsConflict(err))
	})
}

func TestJobInAction_Deactivate(t *testing.T) {
	ja := newPending(t)
	_, err := ja.TransitionTo(JobStatusInProgress)
	require.NoError(t, err)
	changedAt := ja.StatusChangedAt

	ja.Deactivate()
	assert.False(t, ja.Active)
	assert.Equal(t, JobStatusInProgress, ja.Status)
	assert.Equal(t, changedAt, ja.StatusChangedAt)
}

func TestNewHistoryEntry(t *testing.T) {
	t.Run("uses default comment", func(t *testing.T) {
		h, err := NewHistoryEntry(uuid.New(), uuid.New(), uuid.New(), catalog.JobKindIndependent, "")
		require.NoError(t, err)
		assert.Equal(t, DefaultFinishedComment, h.Comment)
		assert.Equal(t, h.CreatedAt, h.RequestedAt)
		assert.True(t, h.Active)
	})

	t.Run("comment update keeps request time", func(t *testing.T) {
		h, err := NewHistoryEntry(uuid.New(), uuid.New(), uuid.New(), catalog.JobKindCompany, "done")
		require.NoError(t, err)
		requested := h.RequestedAt

		require.NoError(t, h.UpdateComment("done, paid"))
		assert.Equal(t, "done, paid", h.Comment)
		assert.Equal(t, requested, h.RequestedAt)
	})

	t.Run("rejects oversized comment", func(t *testing.T) {
		long := make([]byte, 2001)
		for i := range long {
			long[i] = 'a'
		}
		_, err := NewHistoryEntry(uuid.New(), uuid.New(), uuid.New(), catalog.JobKindCompany, string(long))
		assert.True(t, shared.IsValidation(err))
	})
}

func TestHistoryEntry_Deactivate(t *testing.T) {
	h, err := NewHistoryEntry(uuid.New(), uuid.New(), uuid.New(), catalog.JobKindIndependent, "")
	require.NoError(t, err)

	h.Deactivate()
	assert.False(t, h.Active)
	deactivatedAt := h.UpdatedAt

	time.Sleep(time.Millisecond)
	h.Deactivate()
	assert.False(t, h.Active)
	assert.Equal(t, deactivatedAt, h.UpdatedAt, "deactivating twice leaves UpdatedAt alone")
}
