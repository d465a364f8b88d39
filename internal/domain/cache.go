package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key-value port that holds quiz sessions and finished results.
// Implemented by adapter.RedisCacheAdapter.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites key. An expiration of 0 keeps the item indefinitely.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// Delete removes keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	// HGetAll returns all fields of the hash at key, or an empty map.
	HGetAll(ctx context.Context, key string) (map[string]string, error)

	// HSet writes every field of values into the hash at key in one call.
	HSet(ctx context.Context, key string, values map[string]string) error

	// Expire sets an expiration time on key.
	Expire(ctx context.Context, key string, expiration time.Duration) error
}
