// Package cache stores prover verdicts and other request results keyed by
// their input, so repeated submissions skip the external solver.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// ResultCache provides an abstraction for caching encoded results.
// This allows swapping between in-memory, Redis, or other caching implementations.
type ResultCache interface {
	// Get returns the cached value and whether it was present and fresh
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key
	Set(ctx context.Context, key string, value []byte) error

	// Invalidate removes key, forcing a recompute on next Get
	Invalidate(ctx context.Context, key string) error
}

// Config holds configuration for cache behavior
type Config struct {
	// TTL is the time-to-live for cached entries.
	// Set to 0 for no expiration (manual invalidation only).
	TTL time.Duration

	// Prefix namespaces keys in shared backends
	Prefix string
}

// DefaultConfig returns the defaults used when nothing is configured
func DefaultConfig() Config {
	return Config{
		TTL:    10 * time.Minute,
		Prefix: "logicgraph:",
	}
}

// Key derives a stable cache key from the parts of a request.
// Parts are length-prefixed so ("ab","c") and ("a","bc") differ.
func Key(kind string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte{byte(len(p) >> 24), byte(len(p) >> 16), byte(len(p) >> 8), byte(len(p))})
		h.Write([]byte(p))
	}
	return kind + ":" + hex.EncodeToString(h.Sum(nil))
}

// KeyLines is Key over a script: its premise lines then the conclusion
func KeyLines(kind string, lines []string, conclusion string) string {
	return Key(kind, strings.Join(lines, "\n"), conclusion)
}
