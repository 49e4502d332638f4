package render

import (
	"image/color"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchview/pkg/draw"
	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/pdf"
	"github.com/matzehuels/sketchview/pkg/raster"
	"github.com/matzehuels/sketchview/pkg/style"
)

const (
	// DefaultPadding is the margin around the bounding box in document units.
	DefaultPadding = 100.0

	// DefaultPixelScale is the number of pixels per document unit.
	DefaultPixelScale = 4.0

	// MaxPixelScale bounds the pixel scale accepted from callers.
	MaxPixelScale = 16.0

	// DefaultBackground is painted under every element.
	DefaultBackground = "#ffffff"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Config controls a single render.
type Config struct {
	Padding    float64
	PixelScale float64

	// Format is FormatPNG or FormatPDF. Empty means PNG.
	Format string

	// Background is a hex colour painted before any element. Empty or
	// malformed values leave the surface transparent.
	Background string

	// UseDocumentBackground paints the document's viewBackgroundColor
	// instead of Background when the document declares one.
	UseDocumentBackground bool

	// Logger receives per-element debug output. Nil discards.
	Logger *log.Logger `json:"-"`
}

// DefaultConfig returns the configuration used by the HTTP server.
func DefaultConfig() Config {
	return Config{
		Padding:    DefaultPadding,
		PixelScale: DefaultPixelScale,
		Format:     FormatPNG,
		Background: DefaultBackground,
	}
}

// Validate checks the numeric ranges and the format.
func (c Config) Validate() error {
	if !finite(c.Padding) || c.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "padding must be a finite number >= 0, got %v", c.Padding)
	}
	if !finite(c.PixelScale) || c.PixelScale <= 0 || c.PixelScale > MaxPixelScale {
		return errors.New(errors.ErrCodeInvalidInput, "pixel scale must be in (0, %v], got %v", MaxPixelScale, c.PixelScale)
	}
	if c.Format != "" {
		if err := errors.ValidateFormat(c.Format); err != nil {
			return err
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	if format == FormatPDF {
		return "application/pdf"
	}
	return "image/png"
}

// Render parses documentJSON and encodes it in cfg.Format.
func Render(documentJSON []byte, cfg Config) ([]byte, error) {
	doc, err := excalidraw.Parse(documentJSON)
	if err != nil {
		return nil, err
	}
	return Document(doc, cfg)
}

// Document encodes an already parsed document.
func Document(doc *excalidraw.Document, cfg Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg := background(doc, cfg)
	opts := []draw.Option{draw.WithLogger(cfg.Logger)}

	switch cfg.Format {
	case FormatPDF:
		return pdf.Render(doc, cfg.Padding, bg, opts...)
	default:
		var c color.Color
		if bg.A > 0 {
			c = bg
		}
		return raster.RenderPNG(doc, cfg.Padding, cfg.PixelScale, c, opts...)
	}
}

// RenderPDF parses documentJSON and encodes it as a single-page PDF.
func RenderPDF(documentJSON []byte, cfg Config) ([]byte, error) {
	cfg.Format = FormatPDF
	return Render(documentJSON, cfg)
}

func background(doc *excalidraw.Document, cfg Config) color.NRGBA {
	hex := cfg.Background
	if cfg.UseDocumentBackground && doc.AppState.ViewBackgroundColor != "" {
		hex = doc.AppState.ViewBackgroundColor
	}
	if hex == "" {
		return color.NRGBA{}
	}
	return style.ColorOrTransparent(hex, 100)
}
