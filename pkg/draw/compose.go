package draw

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/geom"
)

// Config is the per-render translation applied to every element.
// A nil Logger discards.
type Config struct {
	OffsetX float64
	OffsetY float64
	Logger  *log.Logger
}

// Option adjusts a Config built by Render.
type Option func(*Config)

// WithLogger reports every drawn element at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// NewConfig places bbox at padding distance from the surface origin.
func NewConfig(bbox geom.Rect, padding float64) Config {
	return Config{OffsetX: -bbox.X + padding, OffsetY: -bbox.Y + padding}
}

// Render draws the non-deleted elements of doc onto s in paint order and
// returns the offset it used.
func Render(s Surface, doc *excalidraw.Document, padding float64, opts ...Option) Config {
	cfg := NewConfig(doc.BoundingBox(), padding)
	for _, opt := range opts {
		opt(&cfg)
	}
	Elements(s, doc.Elements, cfg)
	return cfg
}

// Elements draws elements under cfg, skipping soft-deleted ones.
func Elements(s Surface, elements []excalidraw.Element, cfg Config) {
	for i := range elements {
		e := &elements[i]
		if e.IsDeleted {
			continue
		}
		Element(s, e, cfg)
	}
}

// Element draws a single element under cfg. Text and selection elements
// are accepted and ignored.
func Element(s Surface, e *excalidraw.Element, cfg Config) {
	shape := e.Shape()
	switch shape.(type) {
	case excalidraw.Text, excalidraw.Selection:
		return
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("draw element", "id", e.ID, "type", e.Type,
			"x", e.X+cfg.OffsetX, "y", e.Y+cfg.OffsetY, "w", e.Width, "h", e.Height, "angle", e.Angle)
	}
	scoped(s, e.X+cfg.OffsetX, e.Y+cfg.OffsetY, e.Angle, e.Width/2, e.Height/2, func() {
		switch sh := shape.(type) {
		case excalidraw.Rectangle:
			drawRectangle(s, e, sh)
		case excalidraw.Diamond:
			drawDiamond(s, e, sh)
		case excalidraw.Ellipse:
			drawEllipse(s, e, sh)
		case excalidraw.Line:
			drawLine(s, e, sh)
		case excalidraw.Arrow:
			drawArrow(s, e, sh)
		}
	})
}
