package draw

import (
	"image/color"
	"math"

	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/geom"
	"github.com/matzehuels/sketchview/pkg/rough"
	"github.com/matzehuels/sketchview/pkg/style"
)

// options resolves the generator configuration for e. Rounded shapes and
// curves keep their vertices exact.
func options(e *excalidraw.Element) rough.Options {
	return style.Resolve(e, e.Roundness != nil).Options()
}

func drawRectangle(s Surface, e *excalidraw.Element, r excalidraw.Rectangle) {
	g := rough.NewGenerator(options(e))
	if r.Roundness == nil {
		Paint(s, g.Rectangle(0, 0, r.Width, r.Height))
		return
	}
	Paint(s, g.Path(RoundedRectPath(r.Width, r.Height, CornerRadius(math.Min(r.Width, r.Height), r.Roundness))))
}

// RoundedRectPath outlines a w by h box with quadratic corners of radius r.
func RoundedRectPath(w, h, r float64) []rough.Segment {
	var b rough.PathBuilder
	b.MoveTo(r, 0).
		LineTo(w-r, 0).
		QuadTo(w, 0, w, r).
		LineTo(w, h-r).
		QuadTo(w, h, w-r, h).
		LineTo(r, h).
		QuadTo(0, h, 0, h-r).
		LineTo(0, r).
		QuadTo(0, 0, r, 0)
	return b.Segments()
}

// DiamondPoints returns the top, right, bottom and left apexes.
func DiamondPoints(w, h float64) [4]geom.Point {
	midX := math.Floor(w/2) + 1
	midY := math.Floor(h/2) + 1
	return [4]geom.Point{
		{X: midX, Y: 0},
		{X: w, Y: midY},
		{X: midX, Y: h},
		{X: 0, Y: midY},
	}
}

func drawDiamond(s Surface, e *excalidraw.Element, d excalidraw.Diamond) {
	g := rough.NewGenerator(options(e))
	apex := DiamondPoints(d.Width, d.Height)
	if d.Roundness == nil {
		Paint(s, g.Polygon(apex[:]))
		return
	}
	Paint(s, g.Path(RoundedDiamondPath(apex, d.Roundness)))
}

// RoundedDiamondPath cuts each apex back along both edges and joins the
// cuts with a quadratic curve controlled by the apex.
func RoundedDiamondPath(apex [4]geom.Point, r *excalidraw.Roundness) []rough.Segment {
	top, right, bottom, left := apex[0], apex[1], apex[2], apex[3]
	vr := CornerRadius(math.Abs(top.X-left.X), r)
	hr := CornerRadius(math.Abs(right.Y-top.Y), r)

	var b rough.PathBuilder
	b.MoveTo(top.X+vr, top.Y+hr).
		LineTo(right.X-vr, right.Y-hr).
		QuadTo(right.X, right.Y, right.X-vr, right.Y+hr).
		LineTo(bottom.X+vr, bottom.Y-hr).
		QuadTo(bottom.X, bottom.Y, bottom.X-vr, bottom.Y-hr).
		LineTo(left.X+vr, left.Y+hr).
		QuadTo(left.X, left.Y, left.X+vr, left.Y-hr).
		LineTo(top.X-vr, top.Y+hr).
		QuadTo(top.X, top.Y, top.X+vr, top.Y+hr)
	return b.Segments()
}

func drawEllipse(s Surface, e *excalidraw.Element, el excalidraw.Ellipse) {
	o := options(e)
	o.CurveFitting = 1
	g := rough.NewGenerator(o)
	Paint(s, g.Ellipse(el.Width/2, el.Height/2, el.Width, el.Height))
}

// linearOptions are the options for lines and arrows, which never fill.
func linearOptions(e *excalidraw.Element) rough.Options {
	o := options(e)
	o.Fill = color.NRGBA{}
	return o
}

func shaft(g *rough.Generator, l excalidraw.Line) *rough.Drawable {
	if l.Curved {
		return g.Curve(l.Points)
	}
	return g.LinearPath(l.Points)
}

func drawLine(s Surface, e *excalidraw.Element, l excalidraw.Line) {
	Paint(s, shaft(rough.NewGenerator(linearOptions(e)), l))
}

func drawArrow(s Surface, e *excalidraw.Element, a excalidraw.Arrow) {
	o := linearOptions(e)
	g := rough.NewGenerator(o)
	body := shaft(g, a.Line)

	var heads []*rough.Drawable
	if a.Start != excalidraw.ArrowheadNone {
		heads = append(heads, arrowheadShapes(o, body, a.Points, a.Start, false, e.StrokeWidth)...)
	}
	if a.End != excalidraw.ArrowheadNone {
		heads = append(heads, arrowheadShapes(o, body, a.Points, a.End, true, e.StrokeWidth)...)
	}
	for _, h := range heads {
		Paint(s, h)
	}
	Paint(s, body)
}
