package mandala

import (
	"math"
)

// PathSegment is one piece of a [Path]. The set of variants is closed:
// [MoveTo], [Line], [Arc], [SweepArc], [QuadBez] and [CubicBez].
//
// Transforms return new values; segments are never modified in place.
type PathSegment interface {
	// From returns the start point.
	From() Point
	// To returns the end point.
	To() Point
	// Length returns the arc length of the segment.
	Length() float64
	// Translate returns the segment moved by v.
	Translate(v Vec2) PathSegment
	// Rotate returns the segment rotated by angle radians around about.
	Rotate(angle float64, about Point) PathSegment
	// Scale returns the segment scaled uniformly by factor around about.
	Scale(factor float64, about Point) PathSegment
	// FlipAlongX mirrors the segment across the horizontal line at y.
	FlipAlongX(y float64) PathSegment
	// FlipAlongY mirrors the segment across the vertical line at x.
	FlipAlongY(x float64) PathSegment
	// Tolerable returns the flattening tolerance suited to this segment.
	Tolerable() float64
	// Flatten approximates the segment with lines within Tolerable.
	Flatten() []Line
	// BoundingBox returns the axis-aligned bounds of the segment.
	BoundingBox() Rect

	isPathSegment()
}

const (
	// continuityEpsilon is the distance under which two endpoints are
	// considered the same point.
	continuityEpsilon = 1e-9

	// maxFlattenDepth bounds subdivision for tolerances near machine
	// epsilon.
	maxFlattenDepth = 16

	// lengthAccuracy is the accuracy of numeric arc length estimates.
	lengthAccuracy = 1e-4
)

// machineEpsilon is the gap between 1.0 and the next float64.
var machineEpsilon = math.Nextafter(1, 2) - 1

// clampTolerance clamps a curve tolerance to [machineEpsilon, 1].
// NaN, from zero-length curves, maps to 1.
func clampTolerance(t float64) float64 {
	if math.IsNaN(t) {
		return 1
	}
	return math.Min(math.Max(t, machineEpsilon), 1)
}

func mirrorX(p Point, y float64) Point { return Point{X: p.X, Y: 2*y - p.Y} }
func mirrorY(p Point, x float64) Point { return Point{X: 2*x - p.X, Y: p.Y} }

// -------------------------------------------------------------------
// MoveTo
// -------------------------------------------------------------------

// MoveTo is a bare point marker. Inside a path it starts a new,
// disconnected sub-path.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathSegment() {}

// From returns the marker point.
func (m MoveTo) From() Point { return m.Point }

// To returns the marker point.
func (m MoveTo) To() Point { return m.Point }

// Length is always zero.
func (MoveTo) Length() float64 { return 0 }

func (m MoveTo) Translate(v Vec2) PathSegment { return MoveTo{m.Point.Add(v)} }

func (m MoveTo) Rotate(angle float64, about Point) PathSegment {
	return MoveTo{m.Point.RotateAround(about, angle)}
}

func (m MoveTo) Scale(factor float64, about Point) PathSegment {
	return MoveTo{m.Point.ScaleAround(about, factor)}
}

func (m MoveTo) FlipAlongX(y float64) PathSegment { return MoveTo{mirrorX(m.Point, y)} }
func (m MoveTo) FlipAlongY(x float64) PathSegment { return MoveTo{mirrorY(m.Point, x)} }

// Tolerable is zero: a point is exact.
func (MoveTo) Tolerable() float64 { return 0 }

// Flatten returns no lines.
func (MoveTo) Flatten() []Line { return nil }

func (m MoveTo) BoundingBox() Rect { return Rect{Min: m.Point, Max: m.Point} }

// -------------------------------------------------------------------
// Line
// -------------------------------------------------------------------

// Line represents a line segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

func (Line) isPathSegment() {}

// Eval evaluates the line at parameter t (0 to 1).
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

func (l Line) From() Point { return l.P0 }
func (l Line) To() Point   { return l.P1 }

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.P0.Distance(l.P1)
}

func (l Line) Translate(v Vec2) PathSegment {
	return Line{l.P0.Add(v), l.P1.Add(v)}
}

func (l Line) Rotate(angle float64, about Point) PathSegment {
	return Line{l.P0.RotateAround(about, angle), l.P1.RotateAround(about, angle)}
}

func (l Line) Scale(factor float64, about Point) PathSegment {
	return Line{l.P0.ScaleAround(about, factor), l.P1.ScaleAround(about, factor)}
}

func (l Line) FlipAlongX(y float64) PathSegment { return Line{mirrorX(l.P0, y), mirrorX(l.P1, y)} }
func (l Line) FlipAlongY(x float64) PathSegment { return Line{mirrorY(l.P0, x), mirrorY(l.P1, x)} }

// Tolerable is zero: a line is its own flattening.
func (Line) Tolerable() float64 { return 0 }

// Flatten returns the line itself.
func (l Line) Flatten() []Line { return []Line{l} }

func (l Line) BoundingBox() Rect { return NewRect(l.P0, l.P1) }
