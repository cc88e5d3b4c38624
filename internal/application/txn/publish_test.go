package txn_test

import (
	"context"
	"testing"

	"github.com/Wolf09/back-prof-sub000/internal/application/txn"
	"github.com/Wolf09/back-prof-sub000/internal/domain/engagement"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/tests/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishCommitted(t *testing.T) {
	pub := testutil.NewRecordingPublisher()
	ja, err := engagement.NewJobInAction(uuid.New(), uuid.New())
	require.NoError(t, err)

	var nilRoot shared.AggregateRoot
	txn.PublishCommitted(context.Background(), pub, zap.NewNop(), ja, nilRoot)

	assert.Equal(t, []string{engagement.EventTypeJobInActionCreated}, pub.Types())
	assert.Empty(t, ja.GetDomainEvents(), "events are drained")
}

func TestPublishCommitted_LogsFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	pub := testutil.NewRecordingPublisher()
	pub.SetError(assert.AnError)

	ja, err := engagement.NewJobInAction(uuid.New(), uuid.New())
	require.NoError(t, err)

	txn.PublishCommitted(context.Background(), pub, zap.New(core), ja)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "failed to publish domain events", logs.All()[0].Message)
}
