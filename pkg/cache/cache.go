// Package cache stores rendered artifacts and the document fingerprints
// they were rendered from.
//
// A render is reusable when the fingerprint stored for a document still
// matches the document's current bytes. Keys come from a [Keyer] so the
// same backends serve the CLI, the HTTP server and tests:
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewDefaultKeyer()
//	c.Set(ctx, k.FingerprintKey("board.excalidraw"), []byte(fp), 0)
//
// Backends are [FileCache] for local use, [RedisCache] for shared
// deployments and [NullCache] when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer derives cache keys.
type Keyer interface {
	// FingerprintKey addresses the fingerprint recorded for a document.
	FingerprintKey(document string) string

	// ArtifactKey addresses a rendered artifact. Every option that changes
	// the output bytes must be part of the key.
	ArtifactKey(fingerprint string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that influence artifact bytes.
type ArtifactKeyOpts struct {
	Format                string  `json:"format"`
	Padding               float64 `json:"padding"`
	PixelScale            float64 `json:"pixel_scale"`
	Background            string  `json:"background,omitempty"`
	UseDocumentBackground bool    `json:"use_document_background,omitempty"`
}

// KeyPrefix namespaces every key produced by DefaultKeyer.
const KeyPrefix = "sketchview:"

// DefaultKeyer produces "sketchview:fp:<document>" and
// "sketchview:artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) FingerprintKey(document string) string {
	return KeyPrefix + "fp:" + document
}

func (DefaultKeyer) ArtifactKey(fingerprint string, opts ArtifactKeyOpts) string {
	return hashKey(KeyPrefix+"artifact", fingerprint, opts)
}
