package cache

import (
	"context"
	"fmt"
	"time"

	"quiz-exam/internal/adapter"
	"quiz-exam/internal/config"
	"quiz-exam/internal/domain"
	"quiz-exam/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectTimeout = 5 * time.Second

// NewRedisClient creates and returns a new Redis client instance.
// It pings the server to ensure connectivity.
func NewRedisClient(redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, fmt.Errorf("redis configuration is missing or address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", redisCfg.Address, err)
	}

	return client, nil
}

// NewStore picks the session store: Redis when an address is configured,
// otherwise an embedded in-process Redis. The returned close func is never nil.
func NewStore(redisCfg config.RedisConfig) (domain.Cache, func() error, error) {
	if redisCfg.Address == "" {
		logger.Get().Warn("No Redis address configured, sessions are kept in memory")
		return newEmbeddedStore()
	}

	client, err := NewRedisClient(redisCfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Get().Info("Connected to Redis", zap.String("address", redisCfg.Address), zap.Int("db", redisCfg.DB))
	return adapter.NewRedisCacheAdapter(client), client.Close, nil
}
