package mandala

import (
	"math"
	"sort"
)

// -------------------------------------------------------------------
// QuadBez - Quadratic Bezier Curve
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

func (QuadBez) isPathSegment() {}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

func (q QuadBez) From() Point { return q.P0 }
func (q QuadBez) To() Point   { return q.P2 }

// Subdivide splits the curve at t=0.5 using de Casteljau.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	mid := q.Eval(0.5)
	return QuadBez{P0: q.P0, P1: q.P0.Lerp(q.P1, 0.5), P2: mid},
		QuadBez{P0: mid, P1: q.P1.Lerp(q.P2, 0.5), P2: q.P2}
}

// Length returns the arc length in closed form. Curves whose control
// point doubles back over the chord fall back to adaptive subdivision.
func (q QuadBez) Length() float64 {
	a := q.P0.Sub(q.P1).Add(q.P2.Sub(q.P1))
	b := q.P1.Sub(q.P0).Mul(2)

	A := 4 * a.Dot(a)
	B := 4 * a.Dot(b)
	C := b.Dot(b)
	if A < 1e-12 {
		// Straight with uniform speed.
		return q.P0.Distance(q.P2)
	}

	sabc := 2 * math.Sqrt(A+B+C)
	a2 := math.Sqrt(A)
	a32 := 2 * A * a2
	c2 := 2 * math.Sqrt(C)
	ba := B / a2

	l := (a32*sabc + a2*B*(sabc-c2) + (4*C*A-B*B)*math.Log((2*a2+ba+sabc)/(ba+c2))) / (4 * a32)
	if !isFinite(l) || l < 0 {
		return quadLengthRecursive(q, lengthAccuracy*lengthAccuracy, 0)
	}
	return l
}

func quadLengthRecursive(q QuadBez, accuracySq float64, depth int) float64 {
	chord := q.P0.Distance(q.P2)
	polygon := q.P0.Distance(q.P1) + q.P1.Distance(q.P2)
	diff := polygon - chord
	if diff*diff <= accuracySq || depth >= maxFlattenDepth {
		return (chord + polygon) / 2
	}
	q1, q2 := q.Subdivide()
	return quadLengthRecursive(q1, accuracySq, depth+1) + quadLengthRecursive(q2, accuracySq, depth+1)
}

func (q QuadBez) Translate(v Vec2) PathSegment {
	return QuadBez{q.P0.Add(v), q.P1.Add(v), q.P2.Add(v)}
}

func (q QuadBez) Rotate(angle float64, about Point) PathSegment {
	return QuadBez{
		q.P0.RotateAround(about, angle),
		q.P1.RotateAround(about, angle),
		q.P2.RotateAround(about, angle),
	}
}

func (q QuadBez) Scale(factor float64, about Point) PathSegment {
	return QuadBez{
		q.P0.ScaleAround(about, factor),
		q.P1.ScaleAround(about, factor),
		q.P2.ScaleAround(about, factor),
	}
}

func (q QuadBez) FlipAlongX(y float64) PathSegment {
	return QuadBez{mirrorX(q.P0, y), mirrorX(q.P1, y), mirrorX(q.P2, y)}
}

func (q QuadBez) FlipAlongY(x float64) PathSegment {
	return QuadBez{mirrorY(q.P0, x), mirrorY(q.P1, x), mirrorY(q.P2, x)}
}

// Tolerable returns the ratio of the shortest side of the control
// triangle to the curve length, clamped to [machine epsilon, 1].
func (q QuadBez) Tolerable() float64 {
	shortest := math.Min(q.P0.Distance(q.P1), math.Min(q.P1.Distance(q.P2), q.P0.Distance(q.P2)))
	return clampTolerance(shortest / q.Length())
}

// Flatten approximates the curve with lines within Tolerable.
func (q QuadBez) Flatten() []Line {
	var lines []Line
	tol := q.Tolerable()
	flattenQuad(q, tol*tol, 0, func(l Line) { lines = append(lines, l) })
	return lines
}

// flattenQuad subdivides until the control point is within tolerance of
// the chord midpoint.
func flattenQuad(q QuadBez, toleranceSq float64, depth int, fn func(Line)) {
	mid := q.P0.Lerp(q.P2, 0.5)
	if q.P1.Sub(mid).LengthSq() <= toleranceSq || depth >= maxFlattenDepth {
		fn(Line{q.P0, q.P2})
		return
	}
	q1, q2 := q.Subdivide()
	flattenQuad(q1, toleranceSq, depth+1, fn)
	flattenQuad(q2, toleranceSq, depth+1, fn)
}

// extrema returns parameter values where the derivative is zero.
func (q QuadBez) extrema() []float64 {
	var result []float64
	d0 := q.P1.Sub(q.P0)
	dd := q.P2.Sub(q.P1).Sub(d0)
	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	return result
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	bbox := NewRect(q.P0, q.P2)
	for _, t := range q.extrema() {
		bbox = bbox.expand(q.Eval(t))
	}
	return bbox
}

// Raise elevates the quadratic to an exact cubic.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// -------------------------------------------------------------------
// CubicBez - Cubic Bezier Curve
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve with control points P0, P1, P2, P3.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

func (CubicBez) isPathSegment() {}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	t2 := t * t
	return Point{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

func (c CubicBez) From() Point { return c.P0 }
func (c CubicBez) To() Point   { return c.P3 }

// Subdivide splits the curve at t=0.5 using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.SplitAt(0.5)
}

// SplitAt splits the curve at t using de Casteljau.
func (c CubicBez) SplitAt(t float64) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)
	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Length estimates the arc length by adaptive subdivision.
func (c CubicBez) Length() float64 {
	return cubicLengthRecursive(c, lengthAccuracy*lengthAccuracy, 0)
}

func cubicLengthRecursive(c CubicBez, accuracySq float64, depth int) float64 {
	chord := c.P0.Distance(c.P3)
	polygon := c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)
	diff := polygon - chord
	if diff*diff <= accuracySq || depth >= maxFlattenDepth {
		return (chord + polygon) / 2
	}
	c1, c2 := c.Subdivide()
	return cubicLengthRecursive(c1, accuracySq, depth+1) + cubicLengthRecursive(c2, accuracySq, depth+1)
}

func (c CubicBez) Translate(v Vec2) PathSegment {
	return CubicBez{c.P0.Add(v), c.P1.Add(v), c.P2.Add(v), c.P3.Add(v)}
}

func (c CubicBez) Rotate(angle float64, about Point) PathSegment {
	return CubicBez{
		c.P0.RotateAround(about, angle),
		c.P1.RotateAround(about, angle),
		c.P2.RotateAround(about, angle),
		c.P3.RotateAround(about, angle),
	}
}

func (c CubicBez) Scale(factor float64, about Point) PathSegment {
	return CubicBez{
		c.P0.ScaleAround(about, factor),
		c.P1.ScaleAround(about, factor),
		c.P2.ScaleAround(about, factor),
		c.P3.ScaleAround(about, factor),
	}
}

func (c CubicBez) FlipAlongX(y float64) PathSegment {
	return CubicBez{mirrorX(c.P0, y), mirrorX(c.P1, y), mirrorX(c.P2, y), mirrorX(c.P3, y)}
}

func (c CubicBez) FlipAlongY(x float64) PathSegment {
	return CubicBez{mirrorY(c.P0, x), mirrorY(c.P1, x), mirrorY(c.P2, x), mirrorY(c.P3, x)}
}

// Inflections returns the parameter values of inflection points strictly
// inside (0, 1).
func (c CubicBez) Inflections() []float64 {
	// See https://www.caffeineowl.com/graphics/2d/vectorial/cubic-inflexion.html
	a := c.P1.Sub(c.P0)
	b := c.P2.Sub(c.P1).Sub(a)
	cc := c.P3.Sub(c.P0).Sub(c.P2.Sub(c.P1).Mul(3))

	var result []float64
	for _, t := range solveQuadratic(b.Cross(cc), a.Cross(cc), a.Cross(b)) {
		if t > 0 && t < 1 {
			result = append(result, t)
		}
	}
	sort.Float64s(result)
	return result
}

// approxQuad returns the single quadratic that best matches the cubic's
// end tangents.
func (c CubicBez) approxQuad() QuadBez {
	ctrl := c.P1.Vec().Add(c.P2.Vec()).Mul(3).Sub(c.P0.Vec()).Sub(c.P3.Vec()).Mul(0.25)
	return QuadBez{P0: c.P0, P1: ctrl.ToPoint(), P2: c.P3}
}

// Tolerable splits the cubic at its first inflection into up to two
// quadratic approximations and returns the smaller of their tolerances.
func (c CubicBez) Tolerable() float64 {
	infl := c.Inflections()
	if len(infl) == 0 {
		return c.approxQuad().Tolerable()
	}
	left, right := c.SplitAt(infl[0])
	return math.Min(left.approxQuad().Tolerable(), right.approxQuad().Tolerable())
}

// Flatten approximates the curve with lines within Tolerable.
func (c CubicBez) Flatten() []Line {
	var lines []Line
	tol := c.Tolerable()
	flattenCubic(c, tol*tol, 0, func(l Line) { lines = append(lines, l) })
	return lines
}

func flattenCubic(c CubicBez, toleranceSq float64, depth int, fn func(Line)) {
	if cubicFlatness(c) <= 16*toleranceSq || depth >= maxFlattenDepth {
		fn(Line{c.P0, c.P3})
		return
	}
	c1, c2 := c.Subdivide()
	flattenCubic(c1, toleranceSq, depth+1, fn)
	flattenCubic(c2, toleranceSq, depth+1, fn)
}

// cubicFlatness bounds the squared deviation of the control points from
// the chord, scaled by 16.
func cubicFlatness(c CubicBez) float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y
	return math.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}

// extrema returns parameter values where the derivative is zero.
func (c CubicBez) extrema() []float64 {
	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)
	result := unitRoots(solveQuadratic(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X))
	return append(result, unitRoots(solveQuadratic(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y))...)
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)
	for _, t := range c.extrema() {
		bbox = bbox.expand(c.Eval(t))
	}
	return bbox
}
