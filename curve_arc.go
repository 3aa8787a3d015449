package mandala

import (
	"math"
)

// fullSweepEpsilon is the slack under which a sweep counts as a full turn.
const fullSweepEpsilon = 1e-12

// -------------------------------------------------------------------
// SweepArc - center form
// -------------------------------------------------------------------

// SweepArc is an elliptical arc in center form: it starts at angle Start
// on the ellipse around Center and sweeps by Sweep radians (positive is
// clockwise on screen, matching SVG's sweep flag).
type SweepArc struct {
	Center    Point
	Radii     Vec2
	Start     Angle
	Sweep     float64
	XRotation float64
}

func (SweepArc) isPathSegment() {}

// sample returns the point on the ellipse at parametric angle theta.
func (s SweepArc) sample(theta float64) Point {
	sin, cos := math.Sincos(theta)
	return s.Center.Add(V2(s.Radii.X*cos, s.Radii.Y*sin).Rotate(s.XRotation))
}

// tangent returns the (unnormalized) derivative direction at theta.
func (s SweepArc) tangent(theta float64) Vec2 {
	sin, cos := math.Sincos(theta)
	return V2(-s.Radii.X*sin, s.Radii.Y*cos).Rotate(s.XRotation)
}

func (s SweepArc) From() Point { return s.sample(s.Start.Radians()) }

// To returns the end point. A full turn ends exactly where it starts.
func (s SweepArc) To() Point {
	if s.IsFull() {
		return s.From()
	}
	return s.sample(s.Start.Radians() + s.Sweep)
}

// IsFull reports whether the arc covers a whole turn.
func (s SweepArc) IsFull() bool {
	return math.Abs(s.Sweep) >= TwoPi-fullSweepEpsilon
}

// Cubics decomposes the arc into cubic Beziers of at most 90 degrees each.
func (s SweepArc) Cubics() []CubicBez {
	if s.Sweep == 0 {
		return nil
	}
	n := int(math.Ceil(math.Abs(s.Sweep)/(math.Pi/2) - 1e-9))
	n = max(n, 1)
	step := s.Sweep / float64(n)
	arm := math.Copysign((4.0/3.0)*math.Tan(math.Abs(step)/4), s.Sweep)

	start := s.Start.Radians()
	out := make([]CubicBez, 0, n)
	a0 := start
	p0 := s.sample(a0)
	for i := range n {
		a1 := a0 + step
		if i == n-1 {
			a1 = start + s.Sweep
		}
		p3 := s.sample(a1)
		if i == n-1 {
			p3 = s.To()
		}
		out = append(out, CubicBez{
			P0: p0,
			P1: p0.Add(s.tangent(a0).Mul(arm)),
			P2: p3.Add(s.tangent(a1).Mul(-arm)),
			P3: p3,
		})
		a0, p0 = a1, p3
	}
	return out
}

// Length sums the lengths of the cubic decomposition.
func (s SweepArc) Length() float64 {
	var l float64
	for _, c := range s.Cubics() {
		l += c.Length()
	}
	return l
}

func (s SweepArc) Translate(v Vec2) PathSegment {
	s.Center = s.Center.Add(v)
	return s
}

func (s SweepArc) Rotate(angle float64, about Point) PathSegment {
	return s.rotated(angle, about)
}

func (s SweepArc) rotated(angle float64, about Point) SweepArc {
	s.Center = s.Center.RotateAround(about, angle)
	if s.Radii.X == s.Radii.Y {
		// Circles keep XRotation at rest and move the start instead.
		s.Start = s.Start.Add(angle)
	} else {
		s.XRotation += angle
	}
	return s
}

func (s SweepArc) Scale(factor float64, about Point) PathSegment {
	return s.scaled(factor, about)
}

func (s SweepArc) scaled(factor float64, about Point) SweepArc {
	center := s.Center.ScaleAround(about, factor)
	s.Radii = s.Radii.Mul(math.Abs(factor))
	s.Center = center
	if factor < 0 {
		// Negative uniform scale is a half-turn.
		return s.rotated(math.Pi, center)
	}
	return s
}

func (s SweepArc) FlipAlongX(y float64) PathSegment {
	s.Center = mirrorX(s.Center, y)
	s.Start = NewAngle(-s.Start.Radians())
	s.Sweep = -s.Sweep
	s.XRotation = -s.XRotation
	return s
}

func (s SweepArc) FlipAlongY(x float64) PathSegment {
	s.Center = mirrorY(s.Center, x)
	s.Start = NewAngle(math.Pi - s.Start.Radians())
	s.Sweep = -s.Sweep
	s.XRotation = -s.XRotation
	return s
}

// Tolerable returns min(radii) / (min(radii) * |sweep|), clamped.
func (s SweepArc) Tolerable() float64 {
	m := s.Radii.Min()
	return clampTolerance(m / (m * math.Abs(s.Sweep)))
}

// Flatten approximates the arc with lines within Tolerable.
func (s SweepArc) Flatten() []Line {
	tol := s.Tolerable()
	var lines []Line
	for _, c := range s.Cubics() {
		flattenCubic(c, tol*tol, 0, func(l Line) { lines = append(lines, l) })
	}
	return lines
}

func (s SweepArc) BoundingBox() Rect {
	cubics := s.Cubics()
	if len(cubics) == 0 {
		p := s.From()
		return Rect{Min: p, Max: p}
	}
	bbox := cubics[0].BoundingBox()
	for _, c := range cubics[1:] {
		bbox = bbox.Union(c.BoundingBox())
	}
	return bbox
}

// EndpointArc converts the arc to endpoint form. It reports false for a
// full turn, whose endpoints coincide and cannot describe it.
func (s SweepArc) EndpointArc() (Arc, bool) {
	if s.IsFull() {
		return Arc{}, false
	}
	return Arc{
		P0:        s.From(),
		P1:        s.To(),
		Radii:     s.Radii,
		XRotation: s.XRotation,
		LargeArc:  math.Abs(s.Sweep) > math.Pi,
		Sweep:     s.Sweep > 0,
	}, true
}

// -------------------------------------------------------------------
// Arc - endpoint form
// -------------------------------------------------------------------

// Arc is an elliptical arc in SVG endpoint form: from P0 to P1 on an
// ellipse with the given radii and x-axis rotation, with the large-arc and
// sweep flags selecting one of the four candidate arcs.
type Arc struct {
	P0, P1    Point
	Radii     Vec2
	XRotation float64
	LargeArc  bool
	Sweep     bool
}

func (Arc) isPathSegment() {}

func (a Arc) From() Point { return a.P0 }
func (a Arc) To() Point   { return a.P1 }

// isStraight reports whether a zero radius turns the arc into a line.
func (a Arc) isStraight() bool {
	return a.Radii.X == 0 || a.Radii.Y == 0
}

// CenterForm converts the arc to center form (SVG implementation notes,
// F.6.5), scaling radii up when they cannot span the endpoints. It
// reports false for straight or empty arcs.
func (a Arc) CenterForm() (SweepArc, bool) {
	if a.isStraight() || a.P0 == a.P1 {
		return SweepArc{}, false
	}
	rx, ry := math.Abs(a.Radii.X), math.Abs(a.Radii.Y)
	sin, cos := math.Sincos(a.XRotation)
	dx2 := (a.P0.X - a.P1.X) / 2
	dy2 := (a.P0.Y - a.P1.Y) / 2
	x1p := cos*dx2 + sin*dy2
	y1p := -sin*dx2 + cos*dy2

	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := math.Sqrt(math.Max(0, num/den))
	if a.LargeArc == a.Sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	center := Point{
		X: cos*cxp - sin*cyp + (a.P0.X+a.P1.X)/2,
		Y: sin*cxp + cos*cyp + (a.P0.Y+a.P1.Y)/2,
	}
	u := V2((x1p-cxp)/rx, (y1p-cyp)/ry)
	v := V2((-x1p-cxp)/rx, (-y1p-cyp)/ry)
	dtheta := u.AngleTo(v)
	if !a.Sweep && dtheta > 0 {
		dtheta -= TwoPi
	} else if a.Sweep && dtheta < 0 {
		dtheta += TwoPi
	}
	return SweepArc{
		Center:    center,
		Radii:     V2(rx, ry),
		Start:     NewAngle(u.Atan2()),
		Sweep:     dtheta,
		XRotation: a.XRotation,
	}, true
}

// Cubics decomposes the arc into cubic Beziers. A straight arc becomes a
// single straight cubic; an empty arc yields nothing.
func (a Arc) Cubics() []CubicBez {
	if a.P0 == a.P1 {
		return nil
	}
	if s, ok := a.CenterForm(); ok {
		return s.Cubics()
	}
	return []CubicBez{{P0: a.P0, P1: a.P0.Lerp(a.P1, 1.0/3.0), P2: a.P0.Lerp(a.P1, 2.0/3.0), P3: a.P1}}
}

// Length sums the lengths of the cubic decomposition.
func (a Arc) Length() float64 {
	if a.isStraight() {
		return a.P0.Distance(a.P1)
	}
	var l float64
	for _, c := range a.Cubics() {
		l += c.Length()
	}
	return l
}

func (a Arc) Translate(v Vec2) PathSegment {
	a.P0 = a.P0.Add(v)
	a.P1 = a.P1.Add(v)
	return a
}

// Rotate rotates the arc through its center form. It panics with
// ErrDegenerateArc when a zero radius makes the arc a straight line.
func (a Arc) Rotate(angle float64, about Point) PathSegment {
	return a.viaCenter(func(s SweepArc) SweepArc { return s.rotated(angle, about) },
		func(p Point) Point { return p.RotateAround(about, angle) })
}

// Scale scales the arc through its center form. It panics with
// ErrDegenerateArc when a zero radius makes the arc a straight line.
func (a Arc) Scale(factor float64, about Point) PathSegment {
	return a.viaCenter(func(s SweepArc) SweepArc { return s.scaled(factor, about) },
		func(p Point) Point { return p.ScaleAround(about, factor) })
}

func (a Arc) viaCenter(transform func(SweepArc) SweepArc, point func(Point) Point) Arc {
	if a.isStraight() {
		panic(ErrDegenerateArc)
	}
	s, ok := a.CenterForm()
	if !ok {
		// Empty arc: nothing but its endpoint to move.
		a.P0, a.P1 = point(a.P0), point(a.P1)
		return a
	}
	s = transform(s)
	return Arc{
		P0:        s.From(),
		P1:        s.To(),
		Radii:     s.Radii,
		XRotation: s.XRotation,
		LargeArc:  a.LargeArc,
		Sweep:     a.Sweep,
	}
}

func (a Arc) FlipAlongX(y float64) PathSegment {
	a.P0, a.P1 = mirrorX(a.P0, y), mirrorX(a.P1, y)
	a.XRotation = -a.XRotation
	a.Sweep = !a.Sweep
	return a
}

func (a Arc) FlipAlongY(x float64) PathSegment {
	a.P0, a.P1 = mirrorY(a.P0, x), mirrorY(a.P1, x)
	a.XRotation = -a.XRotation
	a.Sweep = !a.Sweep
	return a
}

// Tolerable follows the center form; straight arcs are exact.
func (a Arc) Tolerable() float64 {
	s, ok := a.CenterForm()
	if !ok {
		return 0
	}
	return s.Tolerable()
}

// Flatten approximates the arc with lines within Tolerable.
func (a Arc) Flatten() []Line {
	if a.P0 == a.P1 {
		return nil
	}
	s, ok := a.CenterForm()
	if !ok {
		return []Line{{a.P0, a.P1}}
	}
	return s.Flatten()
}

func (a Arc) BoundingBox() Rect {
	s, ok := a.CenterForm()
	if !ok {
		return NewRect(a.P0, a.P1)
	}
	return s.BoundingBox()
}
