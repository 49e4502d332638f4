package draw

import (
	"math"

	"github.com/matzehuels/sketchview/pkg/excalidraw"
	"github.com/matzehuels/sketchview/pkg/geom"
	"github.com/matzehuels/sketchview/pkg/rough"
)

// tangentT is the curve parameter used to estimate the shaft direction
// near an endpoint.
const tangentT = 0.3

// Marker is the geometry of one arrowhead in element-local coordinates.
type Marker struct {
	Kind excalidraw.Arrowhead
	Tip  geom.Point
	// Wings are the rotated base points; unused for dots.
	Wings [2]geom.Point
	// Radius is only set for dots.
	Radius float64
}

// BezierPoint evaluates the cubic with control points p0..p3 at t.
func BezierPoint(t float64, p0, p1, p2, p3 geom.Point) geom.Point {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return geom.Pt(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

func markerSize(kind excalidraw.Arrowhead) float64 {
	if kind == excalidraw.ArrowheadArrow {
		return 30
	}
	return 15
}

func markerAngle(kind excalidraw.Arrowhead) float64 {
	switch kind {
	case excalidraw.ArrowheadArrow:
		return 20
	case excalidraw.ArrowheadBar:
		return 90
	case excalidraw.ArrowheadTriangle:
		return 25
	}
	return 0
}

// shaftLength is the reference length markers are capped against. Arrow
// wings scale with the last declared segment, the other markers with the
// whole polyline.
func shaftLength(kind excalidraw.Arrowhead, points []geom.Point) float64 {
	if kind != excalidraw.ArrowheadArrow {
		return geom.PolylineLength(points)
	}
	if len(points) < 2 {
		return 0
	}
	return points[len(points)-1].Dist(points[len(points)-2])
}

// terminalCurve returns the cubic that starts (atEnd false) or ends the
// first stroke path of body, as p0..p3.
func terminalCurve(body *rough.Drawable, atEnd bool) ([4]geom.Point, bool) {
	var ops []rough.Op
	for _, set := range body.Sets {
		if set.Type == rough.OpSetPath {
			ops = set.Ops
			break
		}
	}
	if len(ops) < 2 {
		return [4]geom.Point{}, false
	}
	idx := 1
	if atEnd {
		idx = len(ops) - 1
	}
	op := ops[idx]
	if op.Kind != rough.OpBezierTo {
		return [4]geom.Point{}, false
	}
	p0 := ops[idx-1].End()
	return [4]geom.Point{
		p0,
		geom.Pt(op.Data[0], op.Data[1]),
		geom.Pt(op.Data[2], op.Data[3]),
		geom.Pt(op.Data[4], op.Data[5]),
	}, true
}

// ArrowheadMarker computes the marker geometry for one end of a shaft.
// It reports false when the shaft is too degenerate to orient a marker.
func ArrowheadMarker(body *rough.Drawable, points []geom.Point, kind excalidraw.Arrowhead, atEnd bool, strokeWidth float64) (Marker, bool) {
	c, ok := terminalCurve(body, atEnd)
	if !ok {
		return Marker{}, false
	}
	// Control points are passed reversed, so the guide lies nearer p3.
	guide := BezierPoint(tangentT, c[3], c[2], c[1], c[0])
	tip := c[3]
	if !atEnd {
		tip = c[0]
	}
	dist := tip.Dist(guide)
	if dist == 0 || math.IsNaN(dist) {
		return Marker{}, false
	}
	n := tip.Sub(guide).Scale(1 / dist)
	size := math.Min(markerSize(kind), shaftLength(kind, points)/2)
	base := tip.Sub(n.Scale(size))

	m := Marker{Kind: kind, Tip: tip}
	if kind == excalidraw.ArrowheadDot {
		m.Radius = base.Dist(tip) + strokeWidth
		return m, true
	}
	a := markerAngle(kind) * math.Pi / 180
	m.Wings = [2]geom.Point{base.Rotate(tip, -a), base.Rotate(tip, a)}
	return m, true
}

// arrowheadShapes generates the drawables for one arrowhead. strokeWidth
// is the element's declared width, before any stroke style adjustment.
func arrowheadShapes(o rough.Options, body *rough.Drawable, points []geom.Point, kind excalidraw.Arrowhead, atEnd bool, strokeWidth float64) []*rough.Drawable {
	m, ok := ArrowheadMarker(body, points, kind, atEnd, strokeWidth)
	if !ok {
		return nil
	}
	switch kind {
	case excalidraw.ArrowheadArrow, excalidraw.ArrowheadBar:
		g := rough.NewGenerator(o)
		return []*rough.Drawable{
			g.LinearPath([]geom.Point{m.Wings[0], m.Tip}),
			g.LinearPath([]geom.Point{m.Wings[1], m.Tip}),
		}
	case excalidraw.ArrowheadDot:
		so := o
		so.Fill = o.Stroke
		so.FillStyle = rough.FillSolid
		return []*rough.Drawable{rough.NewGenerator(so).Circle(m.Tip.X, m.Tip.Y, 2*m.Radius)}
	case excalidraw.ArrowheadTriangle:
		so := o
		so.Fill = o.Stroke
		so.FillStyle = rough.FillSolid
		so.StrokeLineDash = nil
		return []*rough.Drawable{rough.NewGenerator(so).Polygon([]geom.Point{m.Tip, m.Wings[0], m.Wings[1]})}
	}
	return nil
}
