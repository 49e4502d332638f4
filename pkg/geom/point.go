package geom

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a location in the drawing plane. The y axis grows downwards.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by s.
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(p.X-q.X, p.Y-q.Y) }

// Rotate turns p around center by angle radians. With the y axis pointing
// down a positive angle rotates clockwise on screen.
func (p Point) Rotate(center Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Point{
		X: dx*cos - dy*sin + center.X,
		Y: dx*sin + dy*cos + center.Y,
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", formatFloat(p.X), formatFloat(p.Y))
}

// MarshalJSON encodes p as [x,y].
func (p Point) MarshalJSON() ([]byte, error) {
	if !finite(p.X) || !finite(p.Y) {
		return nil, fmt.Errorf("geom: cannot encode non-finite point %v,%v", p.X, p.Y)
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(formatFloat(p.X))
	b.WriteByte(',')
	b.WriteString(formatFloat(p.Y))
	b.WriteByte(']')
	return []byte(b.String()), nil
}

// UnmarshalJSON decodes a two-element numeric array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return fmt.Errorf("geom: point: %w", err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("geom: point must have 2 coordinates, got %d", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// PolylineLength sums the segment lengths of pts.
func PolylineLength(pts []Point) float64 {
	var total float64
	for i := 1; i < len(pts); i++ {
		total += pts[i].Dist(pts[i-1])
	}
	return total
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
