// Package cache stores rendered maze artifacts.
//
// Mazes are a pure function of (width, height, seed), and so is every
// search over them. Rendering large mazes through Graphviz is the slow part
// of the pipeline, so rendered artifacts are cached under a key derived from
// everything that affects the output bytes.
//
// Three backends are provided: [FileCache] for a single machine,
// [RedisCache] for renders shared between hosts, and [NullCache] for
// --no-cache and tests.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the cached value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// TTLArtifact bounds how long a rendered artifact is kept. Artifacts never
// go stale, so the TTL only limits disk usage.
const TTLArtifact = 7 * 24 * time.Hour

// Keyer derives cache keys.
type Keyer interface {
	ArtifactKey(opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts lists every input that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Width    int     `json:"w"`
	Height   int     `json:"h"`
	Seed     int64   `json:"seed"`
	Solved   bool    `json:"solved"`
	Mode     string  `json:"mode,omitempty"`
	MaxSteps int     `json:"max_steps,omitempty"`
	Visited  bool    `json:"visited,omitempty"`
	Spacing  float64 `json:"spacing,omitempty"`
	Format   string  `json:"format"`
}

// DefaultKeyer hashes the key options into an "artifact:<sha256>" key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(opts ArtifactKeyOpts) string {
	return hashKey("artifact", opts)
}

var _ Keyer = DefaultKeyer{}
