// ABOUTME: In-memory cache built on go-cache with TTL support
// ABOUTME: Default backend for single-process deployments and tests

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = 10 * time.Minute

// ErrKeyNotFound is returned when a key is absent or expired.
var ErrKeyNotFound = errors.New("key not found")

// MemoryCache implements the Cache interface on go-cache.
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates an in-memory cache. Entries without an explicit
// TTL never expire.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, ok := c.store.Get(key)
	if !ok {
		return nil, ErrKeyNotFound
	}

	stored := value.([]byte)
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value with the given TTL. A zero TTL stores forever.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	if ttl <= 0 {
		c.store.Set(key, stored, gocache.NoExpiration)
	} else {
		c.store.Set(key, stored, ttl)
	}
	return nil
}

// Delete removes a key; deleting an absent key is not an error.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.store.Delete(key)
	return nil
}
