package mandala

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translation creates a translation matrix.
func Translation(v Vec2) Matrix {
	return Matrix{A: 1, C: v.X, E: 1, F: v.Y}
}

// Scaling creates a uniform scaling matrix about the origin.
func Scaling(factor float64) Matrix {
	return Matrix{A: factor, E: factor}
}

// Rotation creates a rotation matrix about the origin (angle in radians).
func Rotation(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Multiply returns m * other: other is applied first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// fitInto returns the matrix that scales src uniformly to fit inside dst
// and centers it there.
func fitInto(src, dst Rect) Matrix {
	s := math.Min(dst.Width()/src.Width(), dst.Height()/src.Height())
	offset := dst.Center().Sub(src.Center().Mul(s))
	return Translation(offset).Multiply(Scaling(s))
}
