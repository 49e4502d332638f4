package rough

import (
	"math"

	"github.com/matzehuels/sketchview/pkg/geom"
)

// patternFillPolygons dispatches to the filler for o.FillStyle. Solid is
// handled by the caller.
func patternFillPolygons(polygons [][]geom.Point, o *Options) OpSet {
	var ops []Op
	switch o.FillStyle {
	case FillCrossHatch:
		ops = hachureOps(polygons, o)
		o2 := *o
		o2.HachureAngle += 90
		ops = append(ops, hachureOps(polygons, &o2)...)
	case FillZigZag:
		ops = zigzagOps(polygons, o)
	case FillDots:
		ops = dotOps(polygons, o)
	case FillDashed:
		ops = dashedOps(polygons, o)
	case FillZigZagLine:
		ops = zigzagLineOps(polygons, o)
	default:
		ops = hachureOps(polygons, o)
	}
	return OpSet{Type: OpSetFillSketch, Ops: ops}
}

func renderLines(lines []hachureLine, o *Options) []Op {
	var ops []Op
	for _, l := range lines {
		ops = append(ops, doubleLine(l[0].X, l[0].Y, l[1].X, l[1].Y, o, true)...)
	}
	return ops
}

func hachureOps(polygons [][]geom.Point, o *Options) []Op {
	return renderLines(polygonHachureLines(polygons, o), o)
}

func effectiveGap(o *Options) float64 {
	if o.HachureGap < 0 {
		return o.StrokeWidth * 4
	}
	return o.HachureGap
}

func zigzagOps(polygons [][]geom.Point, o *Options) []Op {
	gap := math.Max(effectiveGap(o), 0.1)
	o2 := *o
	o2.HachureGap = gap
	lines := polygonHachureLines(polygons, &o2)
	angle := math.Pi / 180 * o.HachureAngle
	dgx := gap * 0.5 * math.Cos(angle)
	dgy := gap * 0.5 * math.Sin(angle)
	var zz []hachureLine
	for _, l := range lines {
		if lineLength(l) == 0 {
			continue
		}
		p1, p2 := l[0], l[1]
		zz = append(zz,
			hachureLine{geom.Pt(p1.X-dgx, p1.Y+dgy), p2},
			hachureLine{geom.Pt(p1.X+dgx, p1.Y-dgy), p2},
		)
	}
	return renderLines(zz, o)
}

func dotOps(polygons [][]geom.Point, o *Options) []Op {
	o2 := *o
	o2.HachureAngle = 0
	lines := polygonHachureLines(polygons, &o2)

	gap := math.Max(effectiveGap(o), 0.1)
	weight := o.EffectiveFillWeight()
	ro := gap / 4
	var ops []Op
	for _, l := range lines {
		length := lineLength(l)
		count := int(math.Ceil(length/gap)) - 1
		off := length - float64(count)*gap
		x := (l[0].X+l[1].X)/2 - gap/4
		minY := math.Min(l[0].Y, l[1].Y)
		for i := 0; i < count; i++ {
			y := minY + off + float64(i)*gap
			cx := (x - ro) + o2.random()*2*ro
			cy := (y - ro) + o2.random()*2*ro
			ops = append(ops, ellipseOpSet(cx, cy, weight, weight, &o2).Ops...)
		}
	}
	return ops
}

func dashedOps(polygons [][]geom.Point, o *Options) []Op {
	lines := polygonHachureLines(polygons, o)
	dash := effectiveGap(o)
	if o.DashOffset >= 0 {
		dash = o.DashOffset
	}
	gap := effectiveGap(o)
	if o.DashGap >= 0 {
		gap = o.DashGap
	}
	var ops []Op
	for _, l := range lines {
		length := lineLength(l)
		count := int(math.Floor(length / (dash + gap)))
		start := (length + gap - float64(count)*(dash+gap)) / 2
		p1, p2 := l[0], l[1]
		if p1.X > p2.X {
			p1, p2 = p2, p1
		}
		alpha := math.Atan((p2.Y - p1.Y) / (p2.X - p1.X))
		cos, sin := math.Cos(alpha), math.Sin(alpha)
		for i := 0; i < count; i++ {
			ls := float64(i)*(dash+gap) + start
			le := ls + dash
			ops = append(ops, doubleLine(p1.X+ls*cos, p1.Y+ls*sin, p1.X+le*cos, p1.Y+le*sin, o, true)...)
		}
	}
	return ops
}

func zigzagLineOps(polygons [][]geom.Point, o *Options) []Op {
	gap := effectiveGap(o)
	zo := gap
	if o.ZigZagOffset >= 0 {
		zo = o.ZigZagOffset
	}
	o2 := *o
	o2.HachureGap = gap + zo
	lines := polygonHachureLines(polygons, &o2)

	var ops []Op
	dz := math.Sqrt(2 * zo * zo)
	for _, l := range lines {
		length := lineLength(l)
		count := int(math.Round(length / (2 * zo)))
		p1, p2 := l[0], l[1]
		if p1.X > p2.X {
			p1, p2 = p2, p1
		}
		alpha := math.Atan((p2.Y - p1.Y) / (p2.X - p1.X))
		for i := 0; i < count; i++ {
			ls := float64(i) * 2 * zo
			le := float64(i+1) * 2 * zo
			start := geom.Pt(p1.X+ls*math.Cos(alpha), p1.Y+ls*math.Sin(alpha))
			end := geom.Pt(p1.X+le*math.Cos(alpha), p1.Y+le*math.Sin(alpha))
			mid := geom.Pt(start.X+dz*math.Cos(alpha+math.Pi/4), start.Y+dz*math.Sin(alpha+math.Pi/4))
			ops = append(ops, doubleLine(start.X, start.Y, mid.X, mid.Y, &o2, true)...)
			ops = append(ops, doubleLine(mid.X, mid.Y, end.X, end.Y, &o2, true)...)
		}
	}
	return ops
}
