// Package cache implements the Redis-backed pieces of the session engine:
// the read-through view cache (profile/notes/labels partitions, keyed by
// username) and the token-id blocklist.
//
// Everything stored here is disposable. A cache miss is not an error for
// callers of the view cache; the relational store remains authoritative and
// every read path can reconstruct the cached value from it.
package cache

import (
	"context"
	"time"
)

// KeyValue is the narrow surface this package needs from the cache backend.
// Implementations must make Set and Get atomic per key.
type KeyValue interface {
	// Get returns the value stored under key, or ErrCacheMiss if the key
	// is absent or has expired.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key. A zero ttl stores without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the given keys. Deleting an absent key is not an error.
	Delete(ctx context.Context, keys ...string) error
}
