// Package cache stores rendered starfield artifacts.
//
// Only deterministic output is cached: an artifact rendered from a fixed seed
// is identical on every run, so its bytes can be served from disk or Redis
// instead of being redrawn.
//
// # Backends
//
//   - [FileCache]: one JSON entry file per key under a local directory (CLI)
//   - [RedisCache]: shared cache for several server instances
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] derives keys from everything that influences the output bytes.
// [ScopedKeyer] prefixes keys so several deployments can share one Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is reported
	// as hit == false with a nil error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TTLs for cached entries.
const (
	// TTLArtifact applies to rendered pages and images.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLSnapshot applies to JSON star snapshots.
	TTLSnapshot = 30 * 24 * time.Hour
)
