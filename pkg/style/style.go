// Package style resolves an element's declarative styling into the
// configuration consumed by the rough generator and the output surfaces.
package style

import (
	"encoding/hex"
	"image/color"
	"strings"

	"github.com/matzehuels/sketchview/pkg/errors"
	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/rough"
)

// Transparent is substituted for colours that fail to parse.
var Transparent = color.NRGBA{}

// Resolved is the render-ready style of one element.
type Resolved struct {
	Seed               uint64
	FillStyle          rough.FillStyle
	StrokeWidth        float64
	Dash               []float64
	FillWeight         float64
	HachureGap         float64
	DisableMultiStroke bool
	Roughness          float64
	Stroke             color.NRGBA
	Fill               color.NRGBA
	PreserveVertices   bool
}

// Resolve computes the style for e. Continuous shapes (closed outlines and
// curves) keep their vertices exact so adjoining segments meet.
func Resolve(e *excalidraw.Element, continuous bool) Resolved {
	width := StrokeWidth(e.StrokeStyle, e.StrokeWidth)
	return Resolved{
		Seed:               e.Seed,
		FillStyle:          FillStyle(e.FillStyle),
		StrokeWidth:        width,
		Dash:               DashPattern(e.StrokeStyle, e.StrokeWidth),
		FillWeight:         e.StrokeWidth / 2,
		HachureGap:         e.StrokeWidth * 4,
		DisableMultiStroke: e.StrokeStyle != excalidraw.StrokeSolid && e.StrokeStyle != "",
		Roughness:          e.Roughness,
		Stroke:             ColorOrTransparent(e.StrokeColor, e.Opacity),
		Fill:               ColorOrTransparent(e.BackgroundColor, e.Opacity),
		PreserveVertices:   continuous,
	}
}

// Options converts r into generator options on top of the stock defaults.
func (r Resolved) Options() rough.Options {
	o := rough.DefaultOptions()
	o.Seed = r.Seed
	o.FillStyle = r.FillStyle
	o.StrokeWidth = r.StrokeWidth
	o.StrokeLineDash = r.Dash
	o.FillWeight = r.FillWeight
	o.HachureGap = r.HachureGap
	o.DisableMultiStroke = r.DisableMultiStroke
	o.Roughness = r.Roughness
	o.Stroke = r.Stroke
	o.Fill = r.Fill
	o.PreserveVertices = r.PreserveVertices
	return o
}

// StrokeWidth thickens non-solid strokes by half a unit so dashes do not
// look lighter than solid lines.
func StrokeWidth(s excalidraw.StrokeStyle, width float64) float64 {
	if s == excalidraw.StrokeSolid || s == "" {
		return width
	}
	return width + 0.5
}

// DashPattern returns the on/off lengths for s at the declared width.
func DashPattern(s excalidraw.StrokeStyle, width float64) []float64 {
	switch s {
	case excalidraw.StrokeDashed:
		return []float64{8, 8 + width}
	case excalidraw.StrokeDotted:
		return []float64{1.5, 6 + width}
	}
	return []float64{}
}

// FillStyle maps the document fill style onto the generator's.
func FillStyle(f excalidraw.FillStyle) rough.FillStyle {
	switch f {
	case excalidraw.FillHachure:
		return rough.FillHachure
	case excalidraw.FillZigZag:
		return rough.FillZigZag
	case excalidraw.FillCrossHatch:
		return rough.FillCrossHatch
	case excalidraw.FillDots:
		return rough.FillDots
	case excalidraw.FillDashed:
		return rough.FillDashed
	case excalidraw.FillZigZagLine:
		return rough.FillZigZagLine
	}
	return rough.FillSolid
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is
// optional.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Transparent, errors.New(errors.ErrCodeColorParse, "unsupported colour %q", s)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return Transparent, errors.Wrap(errors.ErrCodeColorParse, err, "unsupported colour %q", s)
	}
	c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// ColorOrTransparent parses s and scales its alpha by opacity/100. Any
// parse failure yields transparent black.
func ColorOrTransparent(s string, opacity int) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		return Transparent
	}
	c.A = uint8(float64(c.A) * float64(opacity) / 100)
	return c
}
