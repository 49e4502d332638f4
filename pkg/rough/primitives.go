package rough

import (
	"math"

	"github.com/matzehuels/sketchview/pkg/geom"
)

// ellipseParams caches the step size and jittered radii of an ellipse so
// the outline and the fill share the same shape.
type ellipseParams struct {
	increment float64
	rx, ry    float64
}

func lineOpSet(x1, y1, x2, y2 float64, o *Options) OpSet {
	return OpSet{Type: OpSetPath, Ops: doubleLine(x1, y1, x2, y2, o, false)}
}

func linearPathOpSet(points []geom.Point, closed bool, o *Options) OpSet {
	n := len(points)
	switch {
	case n > 2:
		var ops []Op
		for i := 0; i < n-1; i++ {
			ops = append(ops, doubleLine(points[i].X, points[i].Y, points[i+1].X, points[i+1].Y, o, false)...)
		}
		if closed {
			ops = append(ops, doubleLine(points[n-1].X, points[n-1].Y, points[0].X, points[0].Y, o, false)...)
		}
		return OpSet{Type: OpSetPath, Ops: ops}
	case n == 2:
		return lineOpSet(points[0].X, points[0].Y, points[1].X, points[1].Y, o)
	}
	return OpSet{Type: OpSetPath}
}

func rectanglePoints(x, y, w, h float64) []geom.Point {
	return []geom.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
}

func curveOpSet(points []geom.Point, o *Options) OpSet {
	if len(points) == 0 {
		return OpSet{Type: OpSetPath}
	}
	ops := curveWithOffset(points, 1*(1+o.Roughness*0.2), o)
	if !o.DisableMultiStroke {
		alt := o.altered()
		ops = append(ops, curveWithOffset(points, 1.5*(1+o.Roughness*0.22), &alt)...)
	}
	return OpSet{Type: OpSetPath, Ops: ops}
}

func newEllipseParams(width, height float64, o *Options) ellipseParams {
	psq := math.Sqrt(math.Pi * 2 * math.Sqrt((math.Pow(width/2, 2)+math.Pow(height/2, 2))/2))
	steps := math.Ceil(math.Max(o.CurveStepCount, (o.CurveStepCount/math.Sqrt(200))*psq))
	increment := (math.Pi * 2) / steps
	rx := math.Abs(width / 2)
	ry := math.Abs(height / 2)
	fitRandomness := 1 - o.CurveFitting
	rx += offsetOpt(rx*fitRandomness, o, 1)
	ry += offsetOpt(ry*fitRandomness, o, 1)
	return ellipseParams{increment: increment, rx: rx, ry: ry}
}

// ellipseWithParams returns the outline and the estimated polygon used for
// pattern fills.
func ellipseWithParams(x, y float64, o *Options, p ellipseParams) (OpSet, []geom.Point) {
	all, core := ellipsePoints(p.increment, x, y, p.rx, p.ry, 1, p.increment*offset(0.1, offset(0.4, 1, o, 1), o, 1), o)
	ops := curveOps(all, nil, o)
	if !o.DisableMultiStroke && o.Roughness != 0 {
		all2, _ := ellipsePoints(p.increment, x, y, p.rx, p.ry, 1.5, 0, o)
		ops = append(ops, curveOps(all2, nil, o)...)
	}
	return OpSet{Type: OpSetPath, Ops: ops}, core
}

func ellipseOpSet(x, y, width, height float64, o *Options) OpSet {
	set, _ := ellipseWithParams(x, y, o, newEllipseParams(width, height, o))
	return set
}

func solidFillPolygon(polygons [][]geom.Point, o *Options) OpSet {
	var ops []Op
	for _, pts := range polygons {
		if len(pts) <= 2 {
			continue
		}
		d := o.MaxRandomnessOffset
		ops = append(ops, move(pts[0].X+offsetOpt(d, o, 1), pts[0].Y+offsetOpt(d, o, 1)))
		for _, p := range pts[1:] {
			ops = append(ops, lineTo(p.X+offsetOpt(d, o, 1), p.Y+offsetOpt(d, o, 1)))
		}
	}
	return OpSet{Type: OpSetFillPath, Ops: ops}
}

func offset(min, max float64, o *Options, gain float64) float64 {
	return o.Roughness * gain * (o.random()*(max-min) + min)
}

func offsetOpt(x float64, o *Options, gain float64) float64 {
	return offset(-x, x, o, gain)
}

func doubleLine(x1, y1, x2, y2 float64, o *Options, filling bool) []Op {
	single := o.DisableMultiStroke
	if filling {
		single = o.DisableMultiStrokeFill
	}
	ops := roughLine(x1, y1, x2, y2, o, true, false)
	if single {
		return ops
	}
	return append(ops, roughLine(x1, y1, x2, y2, o, true, true)...)
}

func roughLine(x1, y1, x2, y2 float64, o *Options, withMove, overlay bool) []Op {
	lengthSq := (x1-x2)*(x1-x2) + (y1-y2)*(y1-y2)
	length := math.Sqrt(lengthSq)

	var gain float64
	switch {
	case length < 200:
		gain = 1
	case length > 500:
		gain = 0.4
	default:
		gain = -0.0016668*length + 1.233334
	}

	off := o.MaxRandomnessOffset
	if off*off*100 > lengthSq {
		off = length / 10
	}
	half := off / 2
	diverge := 0.2 + o.random()*0.2
	midX := o.Bowing * o.MaxRandomnessOffset * (y2 - y1) / 200
	midY := o.Bowing * o.MaxRandomnessOffset * (x1 - x2) / 200
	midX = offsetOpt(midX, o, gain)
	midY = offsetOpt(midY, o, gain)

	jitter := func(d float64) float64 { return offsetOpt(d, o, gain) }
	vertex := func(d float64) float64 {
		if o.PreserveVertices {
			return 0
		}
		return jitter(d)
	}

	var ops []Op
	if withMove {
		if overlay {
			ops = append(ops, move(x1+vertex(half), y1+vertex(half)))
		} else {
			ops = append(ops, move(x1+vertex(off), y1+vertex(off)))
		}
	}
	d := off
	if overlay {
		d = half
	}
	ops = append(ops, bezierTo(
		midX+x1+(x2-x1)*diverge+jitter(d),
		midY+y1+(y2-y1)*diverge+jitter(d),
		midX+x1+2*(x2-x1)*diverge+jitter(d),
		midY+y1+2*(y2-y1)*diverge+jitter(d),
		x2+vertex(d),
		y2+vertex(d),
	))
	return ops
}

func curveWithOffset(points []geom.Point, off float64, o *Options) []Op {
	if len(points) == 0 {
		return nil
	}
	ps := make([]geom.Point, 0, len(points)+2)
	jittered := func(p geom.Point) geom.Point {
		return geom.Pt(p.X+offsetOpt(off, o, 1), p.Y+offsetOpt(off, o, 1))
	}
	ps = append(ps, jittered(points[0]), jittered(points[0]))
	for i := 1; i < len(points); i++ {
		ps = append(ps, jittered(points[i]))
		if i == len(points)-1 {
			ps = append(ps, jittered(points[i]))
		}
	}
	return curveOps(ps, nil, o)
}

// curveOps fits a Catmull-Rom spline through points. The first and last
// points act as tangent guides and are not drawn through.
func curveOps(points []geom.Point, closePoint *geom.Point, o *Options) []Op {
	n := len(points)
	var ops []Op
	switch {
	case n > 3:
		s := 1 - o.CurveTightness
		ops = append(ops, move(points[1].X, points[1].Y))
		for i := 1; i+2 < n; i++ {
			p := points[i]
			b1 := geom.Pt(p.X+(s*points[i+1].X-s*points[i-1].X)/6, p.Y+(s*points[i+1].Y-s*points[i-1].Y)/6)
			b2 := geom.Pt(points[i+1].X+(s*points[i].X-s*points[i+2].X)/6, points[i+1].Y+(s*points[i].Y-s*points[i+2].Y)/6)
			b3 := points[i+1]
			ops = append(ops, bezierTo(b1.X, b1.Y, b2.X, b2.Y, b3.X, b3.Y))
		}
		if closePoint != nil {
			ro := o.MaxRandomnessOffset
			ops = append(ops, lineTo(closePoint.X+offsetOpt(ro, o, 1), closePoint.Y+offsetOpt(ro, o, 1)))
		}
	case n == 3:
		ops = append(ops,
			move(points[1].X, points[1].Y),
			bezierTo(points[1].X, points[1].Y, points[2].X, points[2].Y, points[2].X, points[2].Y),
		)
	case n == 2:
		ops = append(ops, roughLine(points[0].X, points[0].Y, points[1].X, points[1].Y, o, true, true)...)
	}
	return ops
}

func ellipsePoints(increment, cx, cy, rx, ry, off, overlap float64, o *Options) (all, core []geom.Point) {
	at := func(angle, scale float64) geom.Point {
		return geom.Pt(cx+scale*rx*math.Cos(angle), cy+scale*ry*math.Sin(angle))
	}
	if o.Roughness == 0 {
		increment /= 4
		all = append(all, at(-increment, 1))
		for angle := 0.0; angle <= math.Pi*2; angle += increment {
			p := at(angle, 1)
			core = append(core, p)
			all = append(all, p)
		}
		all = append(all, at(0, 1), at(increment, 1))
		return all, core
	}

	jittered := func(angle, scale float64) geom.Point {
		dx := offsetOpt(off, o, 1)
		dy := offsetOpt(off, o, 1)
		return geom.Pt(dx+cx+scale*rx*math.Cos(angle), dy+cy+scale*ry*math.Sin(angle))
	}
	radOffset := offsetOpt(0.5, o, 1) - math.Pi/2
	all = append(all, jittered(radOffset-increment, 0.9))
	end := math.Pi*2 + radOffset - 0.01
	for angle := radOffset; angle < end; angle += increment {
		p := jittered(angle, 1)
		core = append(core, p)
		all = append(all, p)
	}
	all = append(all,
		jittered(radOffset+math.Pi*2+overlap*0.5, 1),
		jittered(radOffset+overlap, 0.98),
		jittered(radOffset+overlap*0.5, 0.9),
	)
	return all, core
}

func bezierOps(x1, y1, x2, y2, x, y float64, current geom.Point, o *Options) []Op {
	ro := o.MaxRandomnessOffset
	if ro == 0 {
		ro = 1
	}
	ros := [2]float64{ro, ro + 0.3}
	iterations := 2
	if o.DisableMultiStroke {
		iterations = 1
	}
	var ops []Op
	for i := 0; i < iterations; i++ {
		if i == 0 || o.PreserveVertices {
			ops = append(ops, move(current.X, current.Y))
		} else {
			ops = append(ops, move(current.X+offsetOpt(ros[0], o, 1), current.Y+offsetOpt(ros[0], o, 1)))
		}
		fx, fy := x, y
		if !o.PreserveVertices {
			fx += offsetOpt(ros[i], o, 1)
			fy += offsetOpt(ros[i], o, 1)
		}
		ops = append(ops, bezierTo(
			x1+offsetOpt(ros[i], o, 1), y1+offsetOpt(ros[i], o, 1),
			x2+offsetOpt(ros[i], o, 1), y2+offsetOpt(ros[i], o, 1),
			fx, fy,
		))
	}
	return ops
}
