package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key does not exist.
var ErrKeyNotFound = errors.New("key not found")

// Cache defines the key-value operations the application stores documents through.
// This is a port that can be implemented by different providers (Redis, Memcached, etc.).
type Cache interface {
	// Get retrieves a value by key.
	// Returns an error wrapping ErrKeyNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified key and TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores a value only if the key does not exist yet.
	// It reports whether the value was stored.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// SetXX overwrites a value only if the key already exists.
	// It reports whether the value was stored.
	SetXX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// Scan returns every key matching the glob pattern.
	Scan(ctx context.Context, pattern string) ([]string, error)

	// Ping checks if the service is reachable.
	Ping(ctx context.Context) error

	// Close closes the connection.
	Close() error
}
