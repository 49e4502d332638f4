// Package pipeline provides the cached render pipeline shared by the CLI
// and the HTTP server.
//
// A run reads a document, fingerprints its bytes and reuses the cached
// artifact when the fingerprint recorded for the document still matches.
// Otherwise the document is parsed and rendered, and the artifact is
// stored before the new fingerprint so a crash between the two writes
// can only cause an extra render.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Document: "board.excalidraw",
//	    Format:   "png",
//	})
//	png := result.Artifact
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchview/pkg/cache"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/render"
)

// Options contains all configuration for one render.
// This struct supports JSON serialization for API requests.
type Options struct {
	Document              string  `json:"document"`
	Format                string  `json:"format,omitempty"`
	Padding               float64 `json:"padding,omitempty"`
	PixelScale            float64 `json:"pixel_scale,omitempty"`
	Background            string  `json:"background,omitempty"`
	UseDocumentBackground bool    `json:"use_document_background,omitempty"`

	// NoCache bypasses the cache for both reads and writes.
	NoCache bool `json:"no_cache,omitempty"`

	// TTL applies to cache writes. Zero keeps entries until evicted.
	TTL time.Duration `json:"-"`

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Document    string
	Fingerprint string
	Artifact    []byte
	ContentType string
	CacheHit    bool
	Stats       Stats
}

// Stats contains timing and size information.
type Stats struct {
	ReadTime   time.Duration
	RenderTime time.Duration
	Bytes      int
}

// SetDefaults fills zero fields with the render defaults. Zero padding is
// valid and kept; DefaultOptions starts from the default padding.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = render.FormatPNG
	}
	if o.PixelScale == 0 {
		o.PixelScale = render.DefaultPixelScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// DefaultOptions returns options for document with every render default
// applied.
func DefaultOptions(document string) Options {
	o := Options{
		Document:   document,
		Padding:    render.DefaultPadding,
		Background: render.DefaultBackground,
	}
	o.SetDefaults()
	return o
}

// Validate checks the options after defaults are applied.
func (o *Options) Validate() error {
	if o.Document == "" {
		return errors.New(errors.ErrCodeInvalidInput, "document is required")
	}
	return o.RenderConfig().Validate()
}

// RenderConfig returns the render configuration for these options.
func (o *Options) RenderConfig() render.Config {
	return render.Config{
		Padding:               o.Padding,
		PixelScale:            o.PixelScale,
		Format:                o.Format,
		Background:            o.Background,
		UseDocumentBackground: o.UseDocumentBackground,
		Logger:                o.Logger,
	}
}

// ArtifactKeyOpts returns cache key options for the rendered artifact.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:                o.Format,
		Padding:               o.Padding,
		PixelScale:            o.PixelScale,
		Background:            o.Background,
		UseDocumentBackground: o.UseDocumentBackground,
	}
}
