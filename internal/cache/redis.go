package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisConfig configures the Redis backend connection.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
}

const redisOpTimeout = 5 * time.Second

// redisStore implements Store on a Redis backend.
type redisStore struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedis creates a Redis-backed store and verifies connectivity. Callers
// should fall back to NewNoop when this returns an error.
func NewRedis(cfg RedisConfig, log zerolog.Logger) (Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	return &redisStore{
		client: client,
		log:    log.With().Str("component", "redis-store").Logger(),
	}, nil
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) ZAdd(ctx context.Context, key string, score float64, member string) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return fmt.Errorf("redis zadd %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	members, err := s.client.ZRevRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis zrevrange %s: %w", key, err)
	}
	return members, nil
}

func (s *redisStore) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()

	if err := s.client.ZRemRangeByRank(ctx, key, start, stop).Err(); err != nil {
		return fmt.Errorf("redis zremrangebyrank %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, redisOpTimeout)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

func (s *redisStore) Close() error {
	return s.client.Close()
}
