// Package cache stores rendered artifacts between runs.
//
// Rendering a large assembly graph with Graphviz can take much longer than
// parsing it, and the same DOT source always renders to the same image. The
// renderer therefore keys artifacts by a hash of the DOT source and the
// output format and keeps them in a [Cache].
//
// Two implementations are provided:
//
//   - [FileCache]: one file per entry under a directory (the CLI uses
//     $XDG_CACHE_HOME/bcalm2dot)
//   - [NullCache]: never stores anything (--no-cache)
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept when no TTL is configured.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored data and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// NullCache never stores anything.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }
