package cache

import (
	"context"
	"time"
)

// Cache is the contract the repositories use for cache-aside reads.
type Cache interface {
	// Get loads key into dest.
	// found = false on a miss, dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with ttl
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// Generation returns the write generation of key, 0 if never invalidated.
	Generation(ctx context.Context, key string) (int64, error)

	// SetIfGeneration stores value only while key is still at generation gen.
	// stored = false when a concurrent Invalidate got there first.
	SetIfGeneration(ctx context.Context, key string, gen int64, value interface{}, ttl time.Duration) (bool, error)

	// Invalidate bumps the generation of key and deletes it atomically.
	Invalidate(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}
