package mandala

import "math"

// RectPath returns a closed rectangle of the given size centered on
// center, as four lines running clockwise from the top-left corner.
func RectPath(size Size, center Point) *Path {
	hw, hh := size.Width/2, size.Height/2
	return NewPathAt(Pt(center.X-hw, center.Y-hh)).
		LineTo(Pt(center.X+hw, center.Y-hh)).
		LineTo(Pt(center.X+hw, center.Y+hh)).
		LineTo(Pt(center.X-hw, center.Y+hh)).
		LineTo(Pt(center.X-hw, center.Y-hh))
}

// CirclePath returns a circle as a single full-sweep arc.
func CirclePath(center Point, r float64) *Path {
	return EllipsePath(center, V2(r, r))
}

// EllipsePath returns an axis-aligned ellipse as a single full-sweep arc.
func EllipsePath(center Point, radii Vec2) *Path {
	p := NewPath()
	p.segments = append(p.segments, SweepArc{Center: center, Radii: radii, Sweep: TwoPi})
	return p
}

// PolygonPath returns a closed regular polygon with n sides inscribed in
// a circle of the given radius, with its first vertex at rotation.
func PolygonPath(center Point, n int, radius, rotation float64) *Path {
	if n < 3 {
		return NewPath()
	}
	step := TwoPi / float64(n)
	vertex := func(i int) Point {
		sin, cos := math.Sincos(rotation + step*float64(i))
		return Pt(center.X+radius*cos, center.Y+radius*sin)
	}
	p := NewPathAt(vertex(0))
	for i := 1; i < n; i++ {
		p.LineTo(vertex(i))
	}
	return p.LineTo(vertex(0))
}
