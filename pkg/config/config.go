// Package config loads sketchview settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file,
// SKETCHVIEW_* environment variables, command-line flags (applied by the
// CLI after Load).
//
//	[server]
//	addr = ":3300"
//	documents_dir = "files"
//
//	[render]
//	padding = 100
//	pixel_scale = 4
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/render"
)

// Backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"

	SourceFile  = "file"
	SourceMongo = "mongo"
)

const appName = "sketchview"

// DefaultPath is the config file read when no path is given.
const DefaultPath = "~/.config/sketchview/config.toml"

// DefaultAddr is the server listen address.
const DefaultAddr = ":3300"

// Config is the complete settings tree.
type Config struct {
	Server Server `toml:"server"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Source Source `toml:"source"`
}

type Server struct {
	Addr         string `toml:"addr"`
	DocumentsDir string `toml:"documents_dir"`
	MDNS         bool   `toml:"mdns"`
}

type Render struct {
	Padding               float64 `toml:"padding"`
	PixelScale            float64 `toml:"pixel_scale"`
	Background            string  `toml:"background"`
	UseDocumentBackground bool    `toml:"use_document_background"`
}

type Cache struct {
	Backend string `toml:"backend"`
	// Dir is the file cache root. Empty means ResolveDir's XDG default.
	Dir       string   `toml:"dir"`
	TTL       Duration `toml:"ttl"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
}

type Source struct {
	Backend         string `toml:"backend"`
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`
}

// Duration decodes TOML strings such as "24h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Server: Server{Addr: DefaultAddr, DocumentsDir: "files"},
		Render: Render{
			Padding:    render.DefaultPadding,
			PixelScale: render.DefaultPixelScale,
			Background: render.DefaultBackground,
		},
		Cache: Cache{
			Backend:   CacheFile,
			RedisAddr: "localhost:6379",
		},
		Source: Source{
			Backend:         SourceFile,
			MongoDatabase:   "sketchview",
			MongoCollection: "documents",
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path means DefaultPath; a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	file, err := homedir.Expand(path)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "expand %s", path)
	}
	if _, err := toml.DecodeFile(file, &cfg); err != nil {
		if !os.IsNotExist(err) || explicit {
			return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", file)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Expand(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from SKETCHVIEW_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("SKETCHVIEW_ADDR"); ok && v != "" {
		c.Server.Addr = v
	}
	if v, ok := lookup("SKETCHVIEW_DOCUMENTS"); ok && v != "" {
		c.Server.DocumentsDir = v
	}
	if v, ok := lookup("SKETCHVIEW_REDIS"); ok && v != "" {
		c.Cache.Backend = CacheRedis
		c.Cache.RedisAddr = v
	}
	if v, ok := lookup("SKETCHVIEW_MONGO_URI"); ok && v != "" {
		c.Source.Backend = SourceMongo
		c.Source.MongoURI = v
	}
}

// ResolveDir returns the file cache directory: Dir when set, otherwise
// $XDG_CACHE_HOME/sketchview, otherwise ~/.cache/sketchview.
func (c Cache) ResolveDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Expand resolves "~" in directory settings.
func (c *Config) Expand() error {
	for _, p := range []*string{&c.Server.DocumentsDir, &c.Cache.Dir} {
		if !strings.HasPrefix(*p, "~") {
			continue
		}
		v, err := homedir.Expand(*p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "expand %s", *p)
		}
		*p = filepath.Clean(v)
	}
	return nil
}

// Validate checks ranges and backend names.
func (c *Config) Validate() error {
	if err := c.RenderConfig().Validate(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	switch c.Source.Backend {
	case SourceFile:
	case SourceMongo:
		if c.Source.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "source backend mongo needs mongo_uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown source backend %q", c.Source.Backend)
	}
	return nil
}

// RenderConfig returns the render settings as a render.Config.
func (c *Config) RenderConfig() render.Config {
	return render.Config{
		Padding:               c.Render.Padding,
		PixelScale:            c.Render.PixelScale,
		Format:                render.FormatPNG,
		Background:            c.Render.Background,
		UseDocumentBackground: c.Render.UseDocumentBackground,
	}
}
