// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for cache operations.
// Implementations can be Redis, SQLite, in-memory, or any other backend.
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}

// JSONCache is an optional extension for backends that store structured
// documents natively. Callers type-assert for it and fall back to plain
// byte storage when absent.
type JSONCache interface {
	// SetJSON stores doc under key as a JSON document.
	SetJSON(ctx context.Context, key string, doc interface{}) error

	// GetJSON loads the document at key into out.
	GetJSON(ctx context.Context, key string, out interface{}) error
}
