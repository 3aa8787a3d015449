package mandala

import "math"

// Point represents a 2D position.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p displaced by v.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the displacement from q to p.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by s about the origin.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// RotateAround returns p rotated by angle radians around pivot.
func (p Point) RotateAround(pivot Point, angle float64) Point {
	return pivot.Add(p.Sub(pivot).Rotate(angle))
}

// ScaleAround returns p scaled by factor about pivot.
func (p Point) ScaleAround(pivot Point, factor float64) Point {
	return pivot.Add(p.Sub(pivot).Mul(factor))
}

// Approx reports whether p and q are equal within epsilon on both axes.
func (p Point) Approx(q Point, epsilon float64) bool {
	return math.Abs(p.X-q.X) <= epsilon && math.Abs(p.Y-q.Y) <= epsilon
}

// Vec returns the displacement from the origin to p.
func (p Point) Vec() Vec2 {
	return Vec2(p)
}
