package draw

import (
	"image/color"

	"github.com/matzehuels/sketchview/pkg/rough"
)

// Pen describes how a path is stroked. Caps and joins are always round.
type Pen struct {
	Color color.NRGBA
	Width float64
	// Dash holds alternating on/off lengths; empty means solid.
	Dash []float64
}

// FillRule selects how overlapping subpaths are filled.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// Surface is the drawing target of the composer. Coordinates passed to
// Stroke and Fill are mapped through the current transform.
type Surface interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	// Rotate turns the local frame by angle radians, clockwise on screen.
	Rotate(angle float64)
	Stroke(ops []rough.Op, pen Pen)
	Fill(ops []rough.Op, c color.NRGBA, rule FillRule)
}

// Paint replays every op set of d on s.
func Paint(s Surface, d *rough.Drawable) {
	o := d.Options
	for _, set := range d.Sets {
		if len(set.Ops) == 0 {
			continue
		}
		switch set.Type {
		case rough.OpSetPath:
			if o.HasStroke() {
				s.Stroke(set.Ops, Pen{Color: o.Stroke, Width: o.StrokeWidth, Dash: o.StrokeLineDash})
			}
		case rough.OpSetFillPath:
			rule := NonZero
			switch d.Shape {
			case "curve", "polygon", "path":
				rule = EvenOdd
			}
			s.Fill(set.Ops, o.Fill, rule)
		case rough.OpSetFillSketch:
			s.Stroke(set.Ops, Pen{Color: o.Fill, Width: o.EffectiveFillWeight(), Dash: o.FillLineDash})
		}
	}
}

// scoped runs fn with s translated to origin and, for a non-zero angle,
// rotated about the local point pivot. The previous state is restored on
// every exit path.
func scoped(s Surface, originX, originY, angle, pivotX, pivotY float64, fn func()) {
	s.Save()
	defer s.Restore()
	s.Translate(originX, originY)
	if angle != 0 {
		s.Translate(pivotX, pivotY)
		s.Rotate(angle)
		s.Translate(-pivotX, -pivotY)
	}
	fn()
}
