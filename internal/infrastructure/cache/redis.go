package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ferdismit7/qmstool-sub002/internal/domain/repository"
)

// RedisConfig describes the Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(cfg RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Redis connection failed", zap.String("addr", cfg.Addr), zap.Error(err))
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	logger.Info("Redis connected", zap.String("addr", cfg.Addr))
	return client, nil
}

// membershipKey is qms:user:{id}:business_areas.
func membershipKey(userID uint) string {
	return fmt.Sprintf("qms:user:%d:business_areas", userID)
}

type redisMembershipCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewMembershipCache caches resolved business areas in Redis.
func NewMembershipCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) repository.MembershipCache {
	return &redisMembershipCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisMembershipCache) Get(ctx context.Context, userID uint) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, membershipKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var areas []string
	if err := json.Unmarshal(raw, &areas); err != nil {
		c.logger.Warn("Discarding malformed membership cache entry",
			zap.Uint("user_id", userID),
			zap.Error(err),
		)
		return nil, false, nil
	}
	return areas, true, nil
}

func (c *redisMembershipCache) Set(ctx context.Context, userID uint, areas []string) error {
	payload, err := json.Marshal(areas)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, membershipKey(userID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisMembershipCache) Invalidate(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, membershipKey(userID)).Err()
}

type noopMembershipCache struct{}

// NewNoopMembershipCache always misses; used when Redis is disabled.
func NewNoopMembershipCache() repository.MembershipCache {
	return noopMembershipCache{}
}

func (noopMembershipCache) Get(context.Context, uint) ([]string, bool, error) {
	return nil, false, nil
}

func (noopMembershipCache) Set(context.Context, uint, []string) error { return nil }

func (noopMembershipCache) Invalidate(context.Context, uint) error { return nil }
