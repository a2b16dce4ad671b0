package shared

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by CacheStore.Get for absent or expired keys.
var ErrCacheMiss = errors.New("cache miss")

// CacheStore is a byte-valued key store with per-key expiry.
type CacheStore interface {
	// Get returns the value for key or ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
