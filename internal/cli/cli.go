// Package cli implements the sketchview command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sketchview/pkg/buildinfo"
	"github.com/matzehuels/sketchview/pkg/cache"
	"github.com/matzehuels/sketchview/pkg/config"
	"github.com/matzehuels/sketchview/pkg/pipeline"
	"github.com/matzehuels/sketchview/pkg/source"
)

// appName is the application name used for display.
const appName = "sketchview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Sketchview renders Excalidraw drawings to PNG and PDF",
		Long:         `Sketchview renders Excalidraw documents as hand-drawn PNG or PDF images, from the command line or over HTTP with a fingerprinted render cache.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath+")")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.discoverCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(store source.Store, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, ch, nil, c.Logger), nil
}

func newCache(cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(cfg.RedisAddr, cfg.RedisDB), nil
	}
	dir, err := cfg.ResolveDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore opens the configured document store. dir overrides the
// configured documents directory when non-empty.
func newStore(ctx context.Context, cfg config.Config, dir string) (source.Store, error) {
	if cfg.Source.Backend == config.SourceMongo {
		return source.NewMongoStore(ctx, cfg.Source.MongoURI, cfg.Source.MongoDatabase, cfg.Source.MongoCollection)
	}
	if dir == "" {
		dir = cfg.Server.DocumentsDir
	}
	return source.NewFileStore(dir)
}

// renderFlags are the render options shared by several commands.
type renderFlags struct {
	format        string
	padding       float64
	pixel         float64
	background    string
	docBackground bool
	noCache       bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "png", "output format: png, pdf")
	cmd.Flags().Float64Var(&f.padding, "padding", -1, "margin around the drawing in document units (default from config)")
	cmd.Flags().Float64Var(&f.pixel, "pixel", 0, "pixels per document unit (default from config)")
	cmd.Flags().StringVar(&f.background, "background", "", "background colour, e.g. #ffffff (default from config)")
	cmd.Flags().BoolVar(&f.docBackground, "doc-background", false, "use the document's own background colour")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the render cache")
}

// options layers flags over the configured render settings.
func (f *renderFlags) options(cfg config.Config, document string) pipeline.Options {
	opts := pipeline.Options{
		Document:              document,
		Format:                f.format,
		Padding:               cfg.Render.Padding,
		PixelScale:            cfg.Render.PixelScale,
		Background:            cfg.Render.Background,
		UseDocumentBackground: cfg.Render.UseDocumentBackground || f.docBackground,
		NoCache:               f.noCache,
		TTL:                   cfg.Cache.TTL.Duration,
	}
	if f.padding >= 0 {
		opts.Padding = f.padding
	}
	if f.pixel != 0 {
		opts.PixelScale = f.pixel
	}
	if f.background != "" {
		opts.Background = f.background
	}
	return opts
}
