//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisStore_GenerationInvalidation(t *testing.T) {
	ctx := context.Background()
	client := newRedisClient(t)
	a := NewRedisStoreWithClient(client, "test:jobs:", time.Minute, zap.NewNop())
	b := NewRedisStoreWithClient(client, "test:jobs:", time.Minute, zap.NewNop())

	require.NoError(t, a.Set(ctx, "bucket=4-4.5", 0, []byte("page-1")))

	got, _, ok, err := b.Get(ctx, "bucket=4-4.5")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "page-1", string(got))

	require.NoError(t, b.Invalidate(ctx))

	_, gen, ok, err := a.Get(ctx, "bucket=4-4.5")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)

	ttl, err := client.TTL(ctx, "test:jobs:q:0:bucket=4-4.5").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestRedisStore_SetFromSupersededGenerationIsDropped(t *testing.T) {
	ctx := context.Background()
	client := newRedisClient(t)
	s := NewRedisStoreWithClient(client, "race:jobs:", time.Minute, zap.NewNop())

	_, before, ok, err := s.Get(ctx, "ranking")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Invalidate(ctx))
	require.NoError(t, s.Set(ctx, "ranking", before, []byte("stale")))

	_, after, ok, err := s.Get(ctx, "ranking")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before+1, after)

	exists, err := client.Exists(ctx, "race:jobs:q:0:ranking", "race:jobs:q:1:ranking").Result()
	require.NoError(t, err)
	assert.Zero(t, exists)

	require.NoError(t, s.Set(ctx, "ranking", after, []byte("fresh")))
	got, _, ok, err := s.Get(ctx, "ranking")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "fresh", string(got))
}
