// ABOUTME: Redis cache backend storing entries as RedisJSON documents
// ABOUTME: Keys are namespaced by a prefix so Clear only drops this service's entries

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nitishm/go-rejson/v4"
	"github.com/redis/go-redis/v9"

	"listings-aggregator-api/pkg/config"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("key not found")

const scanBatch = 100

// RedisCache implements the Cache interface using Redis with the RedisJSON module
type RedisCache struct {
	client  *redis.Client
	handler *rejson.Handler
	prefix  string
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}

	handler := rejson.NewReJSONHandler()
	handler.SetGoRedisClient(client)

	return &RedisCache{
		client:  client,
		handler: handler,
		prefix:  cfg.Prefix,
	}, nil
}

func (c *RedisCache) key(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get retrieves the JSON document stored under key
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	val, err := c.handler.JSONGet(c.key(key), ".")
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	switch v := val.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	case nil:
		return nil, ErrCacheMiss
	default:
		return nil, fmt.Errorf("unexpected redis reply type %T", val)
	}
}

// Set stores value as a JSON document. A zero ttl never expires.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !json.Valid(value) {
		return errors.New("redis cache only stores JSON documents")
	}

	fullKey := c.key(key)
	if _, err := c.handler.JSONSet(fullKey, ".", json.RawMessage(value)); err != nil {
		return fmt.Errorf("failed to set %s: %w", fullKey, err)
	}

	if ttl > 0 {
		if err := c.client.Expire(ctx, fullKey, ttl).Err(); err != nil {
			return fmt.Errorf("failed to set expiration for %s: %w", fullKey, err)
		}
	}
	return nil
}

// Delete removes a key from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	// Deleting a missing key is not an error
	return c.client.Del(ctx, c.key(key)).Err()
}

// Clear deletes every key under the configured prefix
func (c *RedisCache) Clear(ctx context.Context) error {
	match := c.key("*")
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", match, err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
