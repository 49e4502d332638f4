package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/h2non/filetype"

	"github.com/matzehuels/sketchview/pkg/cache"
	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/observability"
	"github.com/matzehuels/sketchview/pkg/render"
	"github.com/matzehuels/sketchview/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for its collaborators. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Store  source.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner reading from store.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(store source.Store, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Store:  store,
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute reads opts.Document from the store and renders it.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	data, err := r.Store.Read(ctx, opts.Document)
	if err != nil {
		return nil, err
	}
	result, err := r.ExecuteBytes(ctx, data, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.ReadTime = time.Since(start) - result.Stats.RenderTime
	return result, nil
}

// ExecuteBytes renders document bytes that were obtained elsewhere.
// opts.Document names the cache entry.
func (r *Runner) ExecuteBytes(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger.With("document", opts.Document, "format", opts.Format)

	result := &Result{
		Document:    opts.Document,
		Fingerprint: cache.Fingerprint(data),
		ContentType: render.ContentType(opts.Format),
	}
	fpKey := r.Keyer.FingerprintKey(opts.Document)
	artifactKey := r.Keyer.ArtifactKey(result.Fingerprint, opts.ArtifactKeyOpts())

	if !opts.NoCache {
		if artifact, ok := r.lookup(ctx, logger, fpKey, artifactKey, result.Fingerprint, opts.Format); ok {
			result.Artifact = artifact
			result.CacheHit = true
			result.Stats.Bytes = len(artifact)
			logger.Debug("cache hit", "fingerprint", result.Fingerprint[:12])
			return result, nil
		}
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Document, opts.Format)
	renderStart := time.Now()
	artifact, elements, err := renderBytes(data, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Document, opts.Format, len(artifact), result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifact = artifact
	result.Stats.Bytes = len(artifact)

	logger.Info("rendered document",
		"elements", elements,
		"bytes", len(artifact),
		"duration", result.Stats.RenderTime)

	if !opts.NoCache {
		r.store(ctx, logger, fpKey, artifactKey, result.Fingerprint, artifact, opts.TTL)
	}
	return result, nil
}

// lookup returns the cached artifact when the stored fingerprint matches
// and the cached bytes sniff as the requested format.
func (r *Runner) lookup(ctx context.Context, logger *log.Logger, fpKey, artifactKey, fingerprint, format string) ([]byte, bool) {
	hooks := observability.Cache()

	stored, hit, err := r.Cache.Get(ctx, fpKey)
	if err != nil {
		logger.Warn("cache read failed", "key", "fingerprint", "err", err)
		return nil, false
	}
	if !hit || string(stored) != fingerprint {
		hooks.OnCacheMiss(ctx, "fingerprint")
		return nil, false
	}
	hooks.OnCacheHit(ctx, "fingerprint")

	artifact, hit, err := r.Cache.Get(ctx, artifactKey)
	if err != nil {
		logger.Warn("cache read failed", "key", "artifact", "err", err)
		return nil, false
	}
	if !hit || !filetype.Is(artifact, format) {
		hooks.OnCacheMiss(ctx, "artifact")
		return nil, false
	}
	hooks.OnCacheHit(ctx, "artifact")
	return artifact, true
}

func (r *Runner) store(ctx context.Context, logger *log.Logger, fpKey, artifactKey, fingerprint string, artifact []byte, ttl time.Duration) {
	hooks := observability.Cache()
	if err := r.Cache.Set(ctx, artifactKey, artifact, ttl); err != nil {
		logger.Warn("cache write failed", "key", "artifact", "err", err)
		return
	}
	hooks.OnCacheSet(ctx, "artifact", len(artifact))
	if err := r.Cache.Set(ctx, fpKey, []byte(fingerprint), ttl); err != nil {
		logger.Warn("cache write failed", "key", "fingerprint", "err", err)
		return
	}
	hooks.OnCacheSet(ctx, "fingerprint", len(fingerprint))
}

func renderBytes(data []byte, opts Options) ([]byte, int, error) {
	doc, err := excalidraw.Parse(data)
	if err != nil {
		return nil, 0, err
	}
	out, err := render.Document(doc, opts.RenderConfig())
	return out, len(doc.Visible()), err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
