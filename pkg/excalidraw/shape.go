package excalidraw

import "github.com/matzehuels/sketchview/pkg/geom"

// Shape is the kind-specific geometry of an element. The concrete types
// are [Rectangle], [Diamond], [Ellipse], [Line], [Arrow], [Text] and
// [Selection].
type Shape interface {
	shape()
}

// Rectangle is an axis-aligned box, optionally with rounded corners.
type Rectangle struct {
	Width, Height float64
	Roundness     *Roundness
}

// Diamond is a rhombus inscribed in its box.
type Diamond struct {
	Width, Height float64
	Roundness     *Roundness
}

// Ellipse is inscribed in its box.
type Ellipse struct {
	Width, Height float64
}

// Line is a polyline through Points, smoothed when Curved is set.
type Line struct {
	Points []geom.Point
	Curved bool
}

// Arrow is a line with optional markers at either end.
type Arrow struct {
	Line
	Start, End Arrowhead
}

// Text is parsed but never drawn.
type Text struct{}

// Selection is parsed but never drawn.
type Selection struct{}

func (Rectangle) shape() {}
func (Diamond) shape()   {}
func (Ellipse) shape()   {}
func (Line) shape()      {}
func (Arrow) shape()     {}
func (Text) shape()      {}
func (Selection) shape() {}

// Shape returns the geometry of e for its kind.
func (e *Element) Shape() Shape {
	switch e.Type {
	case KindRectangle:
		return Rectangle{Width: e.Width, Height: e.Height, Roundness: e.Roundness}
	case KindDiamond:
		return Diamond{Width: e.Width, Height: e.Height, Roundness: e.Roundness}
	case KindEllipse:
		return Ellipse{Width: e.Width, Height: e.Height}
	case KindLine:
		return e.line()
	case KindArrow:
		return Arrow{Line: e.line(), Start: e.StartArrowhead, End: e.EndArrowhead}
	case KindSelection:
		return Selection{}
	}
	return Text{}
}

// line degrades fewer than two points to a pair at the origin.
func (e *Element) line() Line {
	pts := e.Points
	if len(pts) < 2 {
		pts = []geom.Point{{}, {}}
	}
	return Line{Points: pts, Curved: e.Roundness != nil}
}
