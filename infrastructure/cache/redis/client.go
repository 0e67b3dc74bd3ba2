// ABOUTME: Redis cache implementation with native JSON document support
// ABOUTME: Byte values use plain GET/SET; structured snapshots go through ReJSON

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nitishm/go-rejson/v4"
	goredis "github.com/redis/go-redis/v9"
)

// Config holds the Redis connection settings.
type Config struct {
	Address  string
	Password string
	DB       int
}

// RedisCache implements the Cache and JSONCache interfaces using Redis.
type RedisCache struct {
	client  *goredis.Client
	handler *rejson.Handler
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(cfg Config) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	handler := rejson.NewReJSONHandler()
	handler.SetGoRedisClientWithContext(context.Background(), client)

	return &RedisCache{client: client, handler: handler}, nil
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, errors.New("key not found")
		}
		return nil, err
	}
	return val, nil
}

// Set stores a value in Redis with the given TTL; zero TTL never expires.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete removes a key; deleting an absent key is not an error.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	c.client.Del(ctx, key)
	return nil
}

// SetJSON stores doc as a native JSON document at key.
func (c *RedisCache) SetJSON(ctx context.Context, key string, doc interface{}) error {
	_, err := c.handler.JSONSet(key, ".", doc)
	return err
}

// GetJSON loads the JSON document at key into out.
func (c *RedisCache) GetJSON(ctx context.Context, key string, out interface{}) error {
	raw, err := c.handler.JSONGet(key, ".")
	if err != nil {
		return err
	}
	data, ok := raw.([]byte)
	if !ok {
		return errors.New("unexpected reply type from JSON.GET")
	}
	return json.Unmarshal(data, out)
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
