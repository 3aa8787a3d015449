package mandala

import "math"

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner, Max the bottom-right corner.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// RectXYWH creates a rectangle from its top-left corner and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Min: Pt(x, y), Max: Pt(x+w, y+h)}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Size returns the width and height of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Translate returns the rectangle moved by v.
func (r Rect) Translate(v Vec2) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// expand grows the rectangle to include p.
func (r Rect) expand(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// Area returns Width*Height.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// Min returns the smaller dimension.
func (s Size) Min() float64 {
	return math.Min(s.Width, s.Height)
}

// Rect returns the rectangle of this size anchored at the origin.
func (s Size) Rect() Rect {
	return RectXYWH(0, 0, s.Width, s.Height)
}

func (s Size) valid() bool {
	return s.Width > 0 && s.Height > 0 && !math.IsInf(s.Area(), 0)
}
