package rough

import "github.com/matzehuels/sketchview/pkg/geom"

// OpKind identifies a path operation.
type OpKind uint8

const (
	OpMove OpKind = iota
	OpLineTo
	OpBezierTo
)

func (k OpKind) String() string {
	switch k {
	case OpMove:
		return "move"
	case OpLineTo:
		return "lineTo"
	case OpBezierTo:
		return "bcurveTo"
	}
	return "unknown"
}

// Op is a single path operation. Move and LineTo use Data[0:2]; BezierTo
// uses all six values as control point 1, control point 2 and end point.
type Op struct {
	Kind OpKind
	Data [6]float64
}

func move(x, y float64) Op   { return Op{Kind: OpMove, Data: [6]float64{x, y}} }
func lineTo(x, y float64) Op { return Op{Kind: OpLineTo, Data: [6]float64{x, y}} }
func bezierTo(x1, y1, x2, y2, x, y float64) Op {
	return Op{Kind: OpBezierTo, Data: [6]float64{x1, y1, x2, y2, x, y}}
}

// End returns the point the pen rests at after the op.
func (o Op) End() geom.Point {
	if o.Kind == OpBezierTo {
		return geom.Pt(o.Data[4], o.Data[5])
	}
	return geom.Pt(o.Data[0], o.Data[1])
}

// OpSetType says how a surface paints an OpSet.
type OpSetType uint8

const (
	// OpSetPath is stroked with the stroke colour.
	OpSetPath OpSetType = iota
	// OpSetFillPath is filled with the fill colour.
	OpSetFillPath
	// OpSetFillSketch is stroked with the fill colour and fill weight.
	OpSetFillSketch
)

func (t OpSetType) String() string {
	switch t {
	case OpSetPath:
		return "path"
	case OpSetFillPath:
		return "fillPath"
	case OpSetFillSketch:
		return "fillSketch"
	}
	return "unknown"
}

// OpSet is an ordered list of ops painted the same way.
type OpSet struct {
	Type OpSetType
	Ops  []Op
}

// Drawable is the output of a generator call.
type Drawable struct {
	Shape   string
	Options Options
	Sets    []OpSet
}
