package cache

import (
	"context"
	"fmt"

	"github.com/Wolf09/back-prof-sub000/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewStore builds the backend selected by cfg.Driver. When Redis is selected
// but unreachable the error is returned; silently falling back would let
// replicas serve listings that other replicas already invalidated.
func NewStore(ctx context.Context, cfg config.CacheConfig, redisCfg config.RedisConfig, log *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "", "none":
		return NopStore{}, nil
	case "memory":
		return NewInMemoryStore(cfg.TTL), nil
	case "redis":
		s, err := NewRedisStore(ctx, RedisOptions{
			Addr:     redisCfg.Addr(),
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
			TTL:      cfg.TTL,
		}, log)
		if err != nil {
			return nil, err
		}
		log.Info("using Redis job query cache", zap.String("addr", redisCfg.Addr()))
		return s, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
