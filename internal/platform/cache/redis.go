package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/riskibarqy/football-dashboard/internal/platform/logging"
	"github.com/riskibarqy/football-dashboard/internal/platform/resilience"
)

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	Logger    *logging.Logger
}

// RedisStore shares provider payloads across API replicas. Redis errors never fail a load;
// the loader result is returned and the write is skipped.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *logging.Logger
	flight resilience.SingleFlight
}

func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}
	return NewRedisStoreFromClient(client, cfg.KeyPrefix, cfg.Logger), nil
}

func NewRedisStoreFromClient(client *redis.Client, prefix string, logger *logging.Logger) *RedisStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *RedisStore) Load(ctx context.Context, key string, ttl time.Duration, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	if fn == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return fn(ctx)
	}

	fullKey := s.prefix + key
	refresh := IsRefresh(ctx)
	if !refresh {
		if raw, ok := s.get(ctx, fullKey); ok {
			return raw, nil
		}
	}

	out, err, _ := s.flight.Do(ctx, fullKey, func(ctx context.Context) (any, error) {
		if !refresh {
			if raw, ok := s.get(ctx, fullKey); ok {
				return raw, nil
			}
		}
		raw, loadErr := fn(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		if setErr := s.client.Set(ctx, fullKey, raw, ttl).Err(); setErr != nil {
			s.logger.WarnContext(ctx, "redis cache write failed", "key", fullKey, "error", setErr)
		}
		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected cached value type %T", out)
	}
	return raw, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "redis cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}
