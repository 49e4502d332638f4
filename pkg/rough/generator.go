package rough

import "github.com/matzehuels/sketchview/pkg/geom"

// Generator produces drawables from primitives using a fixed base
// configuration.
type Generator struct {
	opts Options
}

// NewGenerator returns a generator for opts.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Options returns the base configuration.
func (g *Generator) Options() Options { return g.opts }

func (g *Generator) drawable(shape string, o Options, sets ...OpSet) *Drawable {
	o.rng = nil
	return &Drawable{Shape: shape, Options: o, Sets: sets}
}

// Line generates a single sketchy line.
func (g *Generator) Line(x1, y1, x2, y2 float64) *Drawable {
	o := g.opts.fresh()
	return g.drawable("line", o, lineOpSet(x1, y1, x2, y2, &o))
}

// Rectangle generates an axis-aligned rectangle with optional fill.
func (g *Generator) Rectangle(x, y, width, height float64) *Drawable {
	o := g.opts.fresh()
	outline := linearPathOpSet(rectanglePoints(x, y, width, height), true, &o)
	var sets []OpSet
	if o.HasFill() {
		sets = append(sets, g.fillPolygon(rectanglePoints(x, y, width, height), &o))
	}
	if o.HasStroke() {
		sets = append(sets, outline)
	}
	return g.drawable("rectangle", o, sets...)
}

// Ellipse generates an ellipse centred at (x, y).
func (g *Generator) Ellipse(x, y, width, height float64) *Drawable {
	o := g.opts.fresh()
	params := newEllipseParams(width, height, &o)
	outline, estimated := ellipseWithParams(x, y, &o, params)
	var sets []OpSet
	if o.HasFill() {
		if o.FillStyle == FillSolid {
			shape, _ := ellipseWithParams(x, y, &o, params)
			shape.Type = OpSetFillPath
			sets = append(sets, shape)
		} else {
			sets = append(sets, patternFillPolygons([][]geom.Point{estimated}, &o))
		}
	}
	if o.HasStroke() {
		sets = append(sets, outline)
	}
	return g.drawable("ellipse", o, sets...)
}

// Circle generates a circle of the given diameter centred at (x, y).
func (g *Generator) Circle(x, y, diameter float64) *Drawable {
	d := g.Ellipse(x, y, diameter, diameter)
	d.Shape = "circle"
	return d
}

// LinearPath generates an open polyline.
func (g *Generator) LinearPath(points []geom.Point) *Drawable {
	o := g.opts.fresh()
	return g.drawable("linearPath", o, linearPathOpSet(points, false, &o))
}

// Polygon generates a closed polygon with optional fill.
func (g *Generator) Polygon(points []geom.Point) *Drawable {
	o := g.opts.fresh()
	outline := linearPathOpSet(points, true, &o)
	var sets []OpSet
	if o.HasFill() {
		sets = append(sets, g.fillPolygon(points, &o))
	}
	if o.HasStroke() {
		sets = append(sets, outline)
	}
	return g.drawable("polygon", o, sets...)
}

// Curve generates a smooth curve through points.
func (g *Generator) Curve(points []geom.Point) *Drawable {
	o := g.opts.fresh()
	outline := curveOpSet(points, &o)
	var sets []OpSet
	if o.HasFill() && len(points) >= 3 {
		if o.FillStyle == FillSolid {
			fo := o
			fo.DisableMultiStroke = true
			if fo.Roughness != 0 {
				fo.Roughness += fo.FillShapeRoughnessGain
			}
			shape := curveOpSet(points, &fo)
			sets = append(sets, OpSet{Type: OpSetFillPath, Ops: mergedShape(shape.Ops)})
		} else {
			poly := pointsOnBezierCurves(curveToBezier(points, o.CurveTightness))
			sets = append(sets, patternFillPolygons([][]geom.Point{poly}, &o))
		}
	}
	if o.HasStroke() {
		sets = append(sets, outline)
	}
	return g.drawable("curve", o, sets...)
}

// Path generates a sketchy rendition of an absolute path.
func (g *Generator) Path(segs []Segment) *Drawable {
	o := g.opts.fresh()
	if len(segs) == 0 {
		return g.drawable("path", o)
	}
	polys := pointsOnPath(segs)
	outline := pathOpSet(segs, &o)
	var sets []OpSet
	if o.HasFill() {
		switch {
		case o.FillStyle == FillSolid && len(polys) == 1:
			fo := o
			fo.DisableMultiStroke = true
			if fo.Roughness != 0 {
				fo.Roughness += fo.FillShapeRoughnessGain
			}
			shape := pathOpSet(segs, &fo)
			sets = append(sets, OpSet{Type: OpSetFillPath, Ops: mergedShape(shape.Ops)})
		case o.FillStyle == FillSolid:
			sets = append(sets, solidFillPolygon(polys, &o))
		default:
			sets = append(sets, patternFillPolygons(polys, &o))
		}
	}
	if o.HasStroke() {
		sets = append(sets, outline)
	}
	return g.drawable("path", o, sets...)
}

func (g *Generator) fillPolygon(points []geom.Point, o *Options) OpSet {
	if o.FillStyle == FillSolid {
		return solidFillPolygon([][]geom.Point{points}, o)
	}
	return patternFillPolygons([][]geom.Point{points}, o)
}

// mergedShape drops every move but the first so a multi-segment outline
// fills as one region.
func mergedShape(ops []Op) []Op {
	out := make([]Op, 0, len(ops))
	for i, op := range ops {
		if i > 0 && op.Kind == OpMove {
			continue
		}
		out = append(out, op)
	}
	return out
}
