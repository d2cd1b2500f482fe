// Package cache provides pluggable storage for pipeline results.
//
// Layouts and rendered artifacts are stored under content-derived keys so a
// repeated request with the same definition and options skips recomputation.
//
// # Backends
//
//   - [FileCache]: one file per entry under a directory, for CLI usage
//   - [RedisCache]: shared cache for API deployments
//   - [MongoCache]: shared cache with a TTL index, for API deployments
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from content hashes and the options that affect the
// cached value. [ScopedKeyer] prefixes keys for namespace isolation.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss with ok == false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Time-to-live for cached pipeline stages. Layouts and artifacts are pure
// functions of their keys and only expire to bound storage.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
