package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchview/pkg/config"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/pipeline"
)

func TestWithExt(t *testing.T) {
	tests := []struct {
		name, format, want string
	}{
		{"board.excalidraw", "png", "board.png"},
		{"dir/board.json", "pdf", "dir/board.pdf"},
		{"noext", "png", "noext.png"},
		{"a.b.excalidraw", "png", "a.b.png"},
	}
	for _, tt := range tests {
		if got := withExt(tt.name, tt.format); got != tt.want {
			t.Errorf("withExt(%q, %q) = %q, want %q", tt.name, tt.format, got, tt.want)
		}
	}
}

func TestFileTargets(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "board.excalidraw")

	targets := fileTargets([]string{in}, "", "png")
	if len(targets) != 1 {
		t.Fatalf("got %d targets", len(targets))
	}
	if targets[0].output != filepath.Join(dir, "board.png") {
		t.Errorf("output = %s", targets[0].output)
	}

	out := filepath.Join(dir, "out")
	targets = fileTargets([]string{in}, out, "pdf")
	if targets[0].output != filepath.Join(out, "board.pdf") {
		t.Errorf("output with -o = %s", targets[0].output)
	}
}

func TestRenderFlagsOptions(t *testing.T) {
	cfg := config.Default()

	unset := renderFlags{format: "png", padding: -1}
	opts := unset.options(cfg, "a.excalidraw")
	if opts.Padding != cfg.Render.Padding || opts.PixelScale != cfg.Render.PixelScale {
		t.Errorf("unset flags = %+v, want config values", opts)
	}
	if opts.Background != cfg.Render.Background {
		t.Errorf("background = %q", opts.Background)
	}

	set := renderFlags{format: "pdf", padding: 0, pixel: 2, background: "#000000", docBackground: true, noCache: true}
	opts = set.options(cfg, "a.excalidraw")
	if opts.Padding != 0 || opts.PixelScale != 2 || opts.Background != "#000000" {
		t.Errorf("set flags = %+v", opts)
	}
	if !opts.UseDocumentBackground || !opts.NoCache || opts.Format != "pdf" {
		t.Errorf("set flags = %+v", opts)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m DocumentListModel, keys ...string) DocumentListModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(DocumentListModel)
	}
	return m
}

func TestDocumentListModel(t *testing.T) {
	docs := []string{"a.excalidraw", "b/c.excalidraw", "d.json"}

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"cursor only", []string{"down", "enter"}, []string{"b/c.excalidraw"}},
		{"marked", []string{" ", "down", "down", " ", "enter"}, []string{"a.excalidraw", "d.json"}},
		{"all", []string{"a", "enter"}, docs},
		{"quit", []string{" ", "q"}, nil},
		{"cursor clamps", []string{"down", "down", "down", "down", "enter"}, []string{"d.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewDocumentListModel(docs), tt.keys...)
			if got := m.Selected(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Selected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRenderAll(t *testing.T) {
	board, err := os.ReadFile("../../pkg/excalidraw/testdata/board.excalidraw")
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	good := filepath.Join(dir, "board.excalidraw")
	if err := os.WriteFile(good, board, 0644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.excalidraw")

	cfg := config.Default()
	cfg.Render.Padding = 10
	cfg.Render.PixelScale = 1
	opts := &renderOpts{renderFlags: renderFlags{format: "png", padding: -1}, jobs: 2}
	runner := pipeline.NewRunner(nil, nil, nil, newLogger(&bytes.Buffer{}, log.InfoLevel))

	var calls atomic.Int32
	outcomes, err := renderAll(context.Background(), runner, fileTargets([]string{good, missing}, "", "png"), opts, cfg, func(done, total int) {
		calls.Add(1)
		if total != 2 {
			t.Errorf("progress total = %d, want 2", total)
		}
	})
	if err != nil {
		t.Fatalf("renderAll: %v", err)
	}
	if n := calls.Load(); n != 2 {
		t.Errorf("progress called %d times, want 2", n)
	}

	if outcomes[0].err != nil {
		t.Fatalf("board: %v", outcomes[0].err)
	}
	png, err := os.ReadFile(filepath.Join(dir, "board.png"))
	if err != nil || !bytes.Equal(png, outcomes[0].result.Artifact) {
		t.Errorf("board.png not written from the artifact: %v", err)
	}
	if !errors.Is(outcomes[1].err, errors.ErrCodeNotFound) {
		t.Errorf("missing document error = %v, want NOT_FOUND", outcomes[1].err)
	}
}
