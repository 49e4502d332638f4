package geom

import "math"

// Affine is a 2D affine transform in the canvas convention:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Affine { return Affine{A: 1, D: 1} }

// Scaling returns a uniform scale about the origin.
func Scaling(s float64) Affine { return Affine{A: s, D: s} }

// Mul returns the transform that applies o first and then m.
func (m Affine) Mul(o Affine) Affine {
	return Affine{
		A: m.A*o.A + m.C*o.B,
		B: m.B*o.A + m.D*o.B,
		C: m.A*o.C + m.C*o.D,
		D: m.B*o.C + m.D*o.D,
		E: m.A*o.E + m.C*o.F + m.E,
		F: m.B*o.E + m.D*o.F + m.F,
	}
}

// Translate returns m with a translation applied before it.
func (m Affine) Translate(dx, dy float64) Affine {
	return m.Mul(Affine{A: 1, D: 1, E: dx, F: dy})
}

// Rotate returns m with a rotation about the local origin applied before it.
func (m Affine) Rotate(angle float64) Affine {
	sin, cos := math.Sincos(angle)
	return m.Mul(Affine{A: cos, B: sin, C: -sin, D: cos})
}

// Apply maps p through m.
func (m Affine) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// LinearScale is the geometric mean of the axis scale factors, used to
// convert logical stroke widths into device units.
func (m Affine) LinearScale() float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}
