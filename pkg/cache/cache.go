// Package cache stores rendered craft-tree artifacts so repeated requests
// for the same databank, target object and view settings skip the render
// pipeline. Backends: file (CLI), redis (server), null (disabled).
package cache

import (
	"context"
	"time"
)

// Cache is a byte-blob store with per-entry expiration.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKeyOpts are the render inputs that change the artifact bytes.
// Every field participates in the cache key.
type ArtifactKeyOpts struct {
	Format      string // dot, svg, png or pdf
	Scale       float64
	MaxDistance int

	// Parent modes by node class, stringified.
	Natural    string
	Categories string
	Default    string
}

// Keyer derives cache keys for rendered artifacts.
type Keyer interface {
	// ArtifactKey keys one rendered artifact: the databank fingerprint, the
	// target object and every option that affects the output.
	ArtifactKey(bankHash string, objID int, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes all key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(bankHash string, objID int, opts ArtifactKeyOpts) string {
	return hashKey("artifact", bankHash, objID, opts)
}
