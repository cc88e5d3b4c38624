package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultKeyPrefix = "marketplace:jobs:"

// setIfGeneration writes ARGV[2] to KEYS[2] only while KEYS[1] still holds
// generation ARGV[1]. ARGV[3] is the TTL in milliseconds, 0 for none.
var setIfGeneration = redis.NewScript(`
local current = redis.call("GET", KEYS[1]) or "0"
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[2], ARGV[2])
end
return 1
`)

// RedisStore is a Store shared by every replica. Keys are namespaced by a
// generation counter; Invalidate bumps the counter so old entries are never
// read again and age out through their TTL. No key scan is needed. Set
// compares the caller's generation with the counter inside one script, so a
// page computed before an Invalidate is never written into the new generation.
type RedisStore struct {
	client     *redis.Client
	ownsClient bool
	prefix     string
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisOptions configures NewRedisStore.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// NewRedisStore dials Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions, log *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	s := NewRedisStoreWithClient(client, opts.KeyPrefix, opts.TTL, log)
	s.ownsClient = true
	return s, nil
}

// NewRedisStoreWithClient wraps an existing client; the caller keeps ownership.
func NewRedisStoreWithClient(client *redis.Client, prefix string, ttl time.Duration, log *zap.Logger) *RedisStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: log.Named("job_query_cache"),
	}
}

func (s *RedisStore) generationKey() string { return s.prefix + "gen" }

func (s *RedisStore) generation(ctx context.Context) (int64, error) {
	gen, err := s.client.Get(ctx, s.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

func (s *RedisStore) entryKey(gen int64, key string) string {
	return fmt.Sprintf("%sq:%d:%s", s.prefix, gen, key)
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, int64, bool, error) {
	gen, err := s.generation(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	data, err := s.client.Get(ctx, s.entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Debug("cache miss", zap.String("key", key), zap.Int64("generation", gen))
		return nil, gen, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to get cached listing: %w", err)
	}
	return data, gen, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, gen int64, value []byte) error {
	keys := []string{s.generationKey(), s.entryKey(gen, key)}
	stored, err := setIfGeneration.Run(ctx, s.client, keys, gen, value, s.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("failed to cache listing: %w", err)
	}
	if stored == 0 {
		s.logger.Debug("dropped listing from a superseded generation",
			zap.String("key", key), zap.Int64("generation", gen))
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context) error {
	gen, err := s.client.Incr(ctx, s.generationKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	s.logger.Debug("cache invalidated", zap.Int64("generation", gen))
	return nil
}

// Close closes the client when the store created it.
func (s *RedisStore) Close() error {
	if s.ownsClient {
		return s.client.Close()
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
