package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/nyaysathi/core/internal/domain/entities"
	"github.com/nyaysathi/core/internal/ports"
)

const defaultPrefix = "nyaysathi:"

type redisCache struct {
	client *redislib.Client
	prefix string
}

// NewRedisCache creates a Redis-backed cache storing JSON values.
func NewRedisCache(client *redislib.Client) ports.CacheRepository {
	return &redisCache{
		client: client,
		prefix: defaultPrefix,
	}
}

func (c *redisCache) key(k string) string {
	return c.prefix + k
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	return c.client.Set(ctx, c.key(key), payload, expiration).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	result, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return entities.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(result, dest); err != nil {
		return fmt.Errorf("decode cache value: %w", err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
