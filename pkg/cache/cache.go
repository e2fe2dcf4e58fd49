// Package cache stores computed artifacts, such as kernel density grids,
// between runs.
//
// Evaluating a KDE over a full 1280×960 domain costs over a billion kernel
// evaluations for a thousand points, so the pipeline keys finished grids by
// a digest of their inputs and reuses them.
//
// Three backends implement [Cache]:
//   - [NullCache]: caching disabled
//   - [FileCache]: one file per entry under a directory (CLI default)
//   - [RedisCache]: a shared redis instance (HTTP service, multiple hosts)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached grids stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// DensityKeyOpts are the parameters that change a density grid besides the
// points themselves.
type DensityKeyOpts struct {
	Bandwidth float64 `json:"bandwidth"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

// Keyer builds cache keys.
type Keyer interface {
	// DensityKey returns the key for the density of the points whose digest
	// is pointsHash.
	DensityKey(pointsHash string, opts DensityKeyOpts) string
}

// DefaultKeyer produces "density:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// DensityKey implements Keyer.
func (DefaultKeyer) DensityKey(pointsHash string, opts DensityKeyOpts) string {
	return hashKey("density", pointsHash, opts)
}
