package rough

import "github.com/matzehuels/sketchview/pkg/geom"

// SegmentKind identifies a path segment command.
type SegmentKind uint8

const (
	SegMoveTo SegmentKind = iota
	SegLineTo
	SegQuadTo
	SegCubicTo
	SegClose
)

// Segment is one command of an absolute path. MoveTo and LineTo use
// Pts[0]; QuadTo uses Pts[0:2]; CubicTo uses Pts[0:3].
type Segment struct {
	Kind SegmentKind
	Pts  [3]geom.Point
}

// PathBuilder accumulates absolute path segments.
type PathBuilder struct {
	segs []Segment
}

func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder {
	b.segs = append(b.segs, Segment{Kind: SegMoveTo, Pts: [3]geom.Point{{X: x, Y: y}}})
	return b
}

func (b *PathBuilder) LineTo(x, y float64) *PathBuilder {
	b.segs = append(b.segs, Segment{Kind: SegLineTo, Pts: [3]geom.Point{{X: x, Y: y}}})
	return b
}

func (b *PathBuilder) QuadTo(cx, cy, x, y float64) *PathBuilder {
	b.segs = append(b.segs, Segment{Kind: SegQuadTo, Pts: [3]geom.Point{{X: cx, Y: cy}, {X: x, Y: y}}})
	return b
}

func (b *PathBuilder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *PathBuilder {
	b.segs = append(b.segs, Segment{Kind: SegCubicTo, Pts: [3]geom.Point{{X: c1x, Y: c1y}, {X: c2x, Y: c2y}, {X: x, Y: y}}})
	return b
}

func (b *PathBuilder) Close() *PathBuilder {
	b.segs = append(b.segs, Segment{Kind: SegClose})
	return b
}

// Segments returns the accumulated path.
func (b *PathBuilder) Segments() []Segment { return b.segs }

// normalize rewrites quadratic segments as cubics so the renderer only
// deals with lines and cubic curves.
func normalize(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	var cur, start geom.Point
	for _, s := range segs {
		switch s.Kind {
		case SegMoveTo:
			cur, start = s.Pts[0], s.Pts[0]
			out = append(out, s)
		case SegLineTo:
			cur = s.Pts[0]
			out = append(out, s)
		case SegQuadTo:
			c, end := s.Pts[0], s.Pts[1]
			c1 := cur.Add(c.Sub(cur).Scale(2.0 / 3.0))
			c2 := end.Add(c.Sub(end).Scale(2.0 / 3.0))
			out = append(out, Segment{Kind: SegCubicTo, Pts: [3]geom.Point{c1, c2, end}})
			cur = end
		case SegCubicTo:
			cur = s.Pts[2]
			out = append(out, s)
		case SegClose:
			cur = start
			out = append(out, s)
		}
	}
	return out
}

func pathOpSet(segs []Segment, o *Options) OpSet {
	var ops []Op
	var first, cur geom.Point
	for _, s := range normalize(segs) {
		switch s.Kind {
		case SegMoveTo:
			cur, first = s.Pts[0], s.Pts[0]
		case SegLineTo:
			ops = append(ops, doubleLine(cur.X, cur.Y, s.Pts[0].X, s.Pts[0].Y, o, false)...)
			cur = s.Pts[0]
		case SegCubicTo:
			c1, c2, end := s.Pts[0], s.Pts[1], s.Pts[2]
			ops = append(ops, bezierOps(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y, cur, o)...)
			cur = end
		case SegClose:
			ops = append(ops, doubleLine(cur.X, cur.Y, first.X, first.Y, o, false)...)
			cur = first
		}
	}
	return OpSet{Type: OpSetPath, Ops: ops}
}

// flattenSteps is the number of chords used per curve segment when a
// path is turned into fill polygons.
const flattenSteps = 12

// pointsOnPath flattens segs into one polygon per subpath.
func pointsOnPath(segs []Segment) [][]geom.Point {
	var sets [][]geom.Point
	var cur []geom.Point
	var pen geom.Point
	flush := func() {
		if len(cur) > 0 {
			sets = append(sets, cur)
		}
		cur = nil
	}
	for _, s := range normalize(segs) {
		switch s.Kind {
		case SegMoveTo:
			flush()
			pen = s.Pts[0]
			cur = append(cur, pen)
		case SegLineTo:
			pen = s.Pts[0]
			cur = append(cur, pen)
		case SegCubicTo:
			cur = append(cur, sampleCubic(pen, s.Pts[0], s.Pts[1], s.Pts[2], flattenSteps)[1:]...)
			pen = s.Pts[2]
		case SegClose:
			if len(cur) > 0 {
				pen = cur[0]
			}
			flush()
		}
	}
	flush()
	return sets
}

// sampleCubic returns steps+1 points along the cubic, both ends included.
func sampleCubic(p0, p1, p2, p3 geom.Point, steps int) []geom.Point {
	pts := make([]geom.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		mt := 1 - t
		a := mt * mt * mt
		b := 3 * mt * mt * t
		c := 3 * mt * t * t
		d := t * t * t
		pts = append(pts, geom.Pt(
			a*p0.X+b*p1.X+c*p2.X+d*p3.X,
			a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
		))
	}
	return pts
}

// curveToBezier converts a Catmull-Rom point list into a sequence of cubic
// control points: start, then (c1, c2, end) triples.
func curveToBezier(in []geom.Point, tightness float64) []geom.Point {
	n := len(in)
	if n < 3 {
		return nil
	}
	if n == 3 {
		return []geom.Point{in[0], in[1], in[2], in[2]}
	}
	pts := make([]geom.Point, 0, n+2)
	pts = append(pts, in[0], in[0])
	for i := 1; i < n; i++ {
		pts = append(pts, in[i])
		if i == n-1 {
			pts = append(pts, in[i])
		}
	}
	s := 1 - tightness
	out := []geom.Point{pts[0]}
	for i := 1; i+2 < len(pts); i++ {
		p := pts[i]
		b1 := geom.Pt(p.X+(s*pts[i+1].X-s*pts[i-1].X)/6, p.Y+(s*pts[i+1].Y-s*pts[i-1].Y)/6)
		b2 := geom.Pt(pts[i+1].X+(s*pts[i].X-s*pts[i+2].X)/6, pts[i+1].Y+(s*pts[i].Y-s*pts[i+2].Y)/6)
		out = append(out, b1, b2, pts[i+1])
	}
	return out
}

func pointsOnBezierCurves(ctrl []geom.Point) []geom.Point {
	if len(ctrl) < 4 {
		return ctrl
	}
	out := []geom.Point{ctrl[0]}
	for i := 0; i+3 < len(ctrl); i += 3 {
		out = append(out, sampleCubic(ctrl[i], ctrl[i+1], ctrl[i+2], ctrl[i+3], flattenSteps)[1:]...)
	}
	return out
}
