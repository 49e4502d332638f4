package geom

import "math"

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{r.X + r.Width, r.Y + r.Height} }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return Point{r.X + r.Width/2, r.Y + r.Height/2} }

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	minX, minY := math.Min(r.X, s.X), math.Min(r.Y, s.Y)
	maxX := math.Max(r.X+r.Width, s.X+s.Width)
	maxY := math.Max(r.Y+r.Height, s.Y+s.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Inset grows r by d on every side. A negative d shrinks it.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}
