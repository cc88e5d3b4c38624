package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Wolf09/back-prof-sub000/internal/domain/catalog"
	"github.com/Wolf09/back-prof-sub000/internal/domain/shared"
	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInMemoryStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(time.Minute)

	_, gen, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", gen, []byte(`{"items":[]}`)))

	got, _, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"items":[]}`, string(got))
}

func TestInMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := NewInMemoryStore(time.Minute)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", 0, []byte("v")))

	now = now.Add(time.Minute)
	_, _, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryStore_Invalidate(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(time.Minute)
	require.NoError(t, s.Set(ctx, "a", 0, []byte("1")))
	require.NoError(t, s.Set(ctx, "b", 0, []byte("2")))

	require.NoError(t, s.Invalidate(ctx))

	assert.Zero(t, s.Len())
	_, gen, ok, _ := s.Get(ctx, "a")
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
}

func TestInMemoryStore_SetFromSupersededGenerationIsDropped(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(time.Minute)

	_, before, _, err := s.Get(ctx, "ranking")
	require.NoError(t, err)
	require.NoError(t, s.Invalidate(ctx))

	require.NoError(t, s.Set(ctx, "ranking", before, []byte("stale")))
	_, after, ok, err := s.Get(ctx, "ranking")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "ranking", after, []byte("fresh")))
	got, _, ok, err := s.Get(ctx, "ranking")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fresh", string(got))
}

func TestNopStore(t *testing.T) {
	ctx := context.Background()
	var s Store = NopStore{}

	require.NoError(t, s.Set(ctx, "k", 0, []byte("v")))
	_, _, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingInvalidator struct{ calls int }

func (f *failingInvalidator) Invalidate(context.Context) error {
	f.calls++
	return errors.New("redis down")
}

func TestInvalidationHandler(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(time.Minute)
	require.NoError(t, s.Set(ctx, "k", 0, []byte("v")))
	h := NewInvalidationHandler(s, zap.NewNop())

	assert.Contains(t, h.EventTypes(), catalog.EventTypeJobAverageRatingChanged)

	ev := shared.NewBaseDomainEvent(catalog.EventTypeJobAverageRatingChanged, catalog.AggregateTypeJob, uuid.New())
	require.NoError(t, h.Handle(ctx, &ev))
	assert.Zero(t, s.Len())

	f := &failingInvalidator{}
	assert.Error(t, NewInvalidationHandler(f, zap.NewNop()).Handle(ctx, &ev))
	assert.Equal(t, 1, f.calls)
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	s, err := NewStore(ctx, config.CacheConfig{Driver: "none"}, config.RedisConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, NopStore{}, s)

	s, err = NewStore(ctx, config.CacheConfig{Driver: "memory", TTL: time.Minute}, config.RedisConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &InMemoryStore{}, s)

	_, err = NewStore(ctx, config.CacheConfig{Driver: "memcached"}, config.RedisConfig{}, zap.NewNop())
	assert.Error(t, err)
}
