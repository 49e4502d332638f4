package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/matzehuels/sketchview/pkg/errors"
)

func TestMain(m *testing.M) {
	// Tests point HOME at temporary directories.
	homedir.DisableCache = true
	os.Exit(m.Run())
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":3300" || cfg.Render.Padding != 100 || cfg.Render.PixelScale != 4 {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[server]
addr = ":8080"
documents_dir = "~/boards"

[render]
padding = 20
pixel_scale = 2

[cache]
backend = "none"
ttl = "36h"
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if want := filepath.Join(home, "boards"); cfg.Server.DocumentsDir != want {
		t.Errorf("DocumentsDir = %q, want %q", cfg.Server.DocumentsDir, want)
	}
	if cfg.Render.Padding != 20 || cfg.Render.PixelScale != 2 {
		t.Errorf("Render = %+v", cfg.Render)
	}
	if cfg.Render.Background != "#ffffff" {
		t.Errorf("unset Background = %q, want default", cfg.Render.Background)
	}
	if cfg.Cache.Backend != CacheNone || cfg.Cache.TTL.Duration != 36*time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Load(absent) error = %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SKETCHVIEW_ADDR":      ":9000",
		"SKETCHVIEW_REDIS":     "redis:6379",
		"SKETCHVIEW_MONGO_URI": "mongodb://db:27017",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.RedisAddr != "redis:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Source.Backend != SourceMongo || cfg.Source.MongoURI != "mongodb://db:27017" {
		t.Errorf("Source = %+v", cfg.Source)
	}
	if cfg.Server.DocumentsDir != "files" {
		t.Errorf("unset variable changed DocumentsDir to %q", cfg.Server.DocumentsDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"negative padding", func(c *Config) { c.Render.Padding = -1 }, false},
		{"zero scale", func(c *Config) { c.Render.PixelScale = 0 }, false},
		{"scale too large", func(c *Config) { c.Render.PixelScale = 17 }, false},
		{"nan padding", func(c *Config) { c.Render.Padding = math.NaN() }, false},
		{"inf scale", func(c *Config) { c.Render.PixelScale = math.Inf(1) }, false},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, false},
		{"unknown source", func(c *Config) { c.Source.Backend = "s3" }, false},
		{"mongo without uri", func(c *Config) { c.Source.Backend = SourceMongo }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestResolveCacheDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := Cache{}.ResolveDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".cache", "sketchview"); dir != want {
		t.Errorf("ResolveDir() = %q, want %q", dir, want)
	}

	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir, _ = Cache{}.ResolveDir()
	if want := filepath.Join(xdg, "sketchview"); dir != want {
		t.Errorf("ResolveDir() with XDG = %q, want %q", dir, want)
	}

	dir, _ = Cache{Dir: "/srv/cache"}.ResolveDir()
	if dir != "/srv/cache" {
		t.Errorf("ResolveDir() with Dir = %q", dir)
	}
}
