package cache

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	h1 := Fingerprint([]byte("hello"))
	h2 := Fingerprint([]byte("hello"))
	if h1 != h2 {
		t.Error("Fingerprint should be deterministic")
	}
	if h1 == Fingerprint([]byte("world")) {
		t.Error("Different inputs should produce different fingerprints")
	}
	if len(h1) != 64 {
		t.Errorf("Fingerprint length = %d, want 64", len(h1))
	}
	// BLAKE2b-256 of the empty string.
	const empty = "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"
	if got := Fingerprint(nil); got != empty {
		t.Errorf("Fingerprint(nil) = %s, want %s", got, empty)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	if got := k.FingerprintKey("boards/a.excalidraw"); got != "sketchview:fp:boards/a.excalidraw" {
		t.Errorf("FingerprintKey() = %s", got)
	}

	base := ArtifactKeyOpts{Format: "png", Padding: 100, PixelScale: 4}
	tests := []struct {
		name string
		opts ArtifactKeyOpts
	}{
		{"format", ArtifactKeyOpts{Format: "pdf", Padding: 100, PixelScale: 4}},
		{"padding", ArtifactKeyOpts{Format: "png", Padding: 10, PixelScale: 4}},
		{"scale", ArtifactKeyOpts{Format: "png", Padding: 100, PixelScale: 2}},
		{"background", ArtifactKeyOpts{Format: "png", Padding: 100, PixelScale: 4, Background: "#000000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if k.ArtifactKey("fp", base) == k.ArtifactKey("fp", tt.opts) {
				t.Error("different options produced the same key")
			}
		})
	}
	if k.ArtifactKey("fp1", base) == k.ArtifactKey("fp2", base) {
		t.Error("different fingerprints produced the same key")
	}
	if !strings.HasPrefix(k.ArtifactKey("fp", base), KeyPrefix) {
		t.Error("artifact key is not namespaced")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "mongo:")
	if got := scoped.FingerprintKey("x"); got != "mongo:sketchview:fp:x" {
		t.Errorf("FingerprintKey() = %s", got)
	}
	if got := scoped.ArtifactKey("fp", ArtifactKeyOpts{}); !strings.HasPrefix(got, "mongo:sketchview:artifact:") {
		t.Errorf("ArtifactKey() = %s", got)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.FingerprintKey("x"); got != "p:sketchview:fp:x" {
		t.Errorf("nil inner FingerprintKey() = %s", got)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "missing"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || !bytes.Equal(data, []byte("value")) {
		t.Errorf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete twice: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should miss")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry = hit %v, err %v; want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	entries, err := os.ReadDir(c.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after Clear", len(entries))
	}
}

// fakeRedis is an in-memory redisClient.
type fakeRedis struct {
	data map[string][]byte
	ttl  map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.data[key] = value.([]byte)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd {
	prefix := strings.TrimSuffix(match, "*")
	var keys []string
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return redis.NewScanCmdResult(keys, 0, nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := &RedisCache{client: fake}

	if _, hit, err := c.Get(ctx, "sketchview:x"); hit || err != nil {
		t.Errorf("Get(missing) = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "sketchview:x", []byte("png"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if fake.ttl["sketchview:x"] != time.Minute {
		t.Errorf("ttl = %v, want 1m", fake.ttl["sketchview:x"])
	}
	data, hit, err := c.Get(ctx, "sketchview:x")
	if err != nil || !hit || string(data) != "png" {
		t.Errorf("Get() = %q, %v, %v", data, hit, err)
	}

	fake.data["other:y"] = []byte("keep")
	if err := c.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := fake.data["sketchview:x"]; ok {
		t.Error("Clear left a namespaced key")
	}
	if _, ok := fake.data["other:y"]; !ok {
		t.Error("Clear removed a foreign key")
	}
}
