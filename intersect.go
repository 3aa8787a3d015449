package mandala

import "math"

// Intersect returns the points where a and b cross, or nil when they do
// not. Line pairs are solved exactly, lines against Bezier curves in
// closed form, and every other pairing on the flattened polylines.
// Collinear overlaps are not reported.
func Intersect(a, b PathSegment) []Point {
	switch a := a.(type) {
	case MoveTo:
		return nil
	case Line:
		return LineIntersection(a, b)
	}
	if l, ok := b.(Line); ok {
		return LineIntersection(l, a)
	}
	if _, ok := b.(MoveTo); ok {
		return nil
	}
	return polylineIntersections(a.Flatten(), b.Flatten())
}

// LineIntersection returns the points where l crosses seg, or nil.
func LineIntersection(l Line, seg PathSegment) []Point {
	switch s := seg.(type) {
	case MoveTo:
		return nil
	case Line:
		if p, ok := lineLine(l, s); ok {
			return []Point{p}
		}
		return nil
	case QuadBez:
		return lineQuad(l, s)
	case CubicBez:
		return lineCubic(l, s)
	default:
		return polylineIntersections([]Line{l}, seg.Flatten())
	}
}

// lineLine intersects two line segments. Parallel lines never intersect.
func lineLine(l1, l2 Line) (Point, bool) {
	d1 := l1.P1.Sub(l1.P0)
	d2 := l2.P1.Sub(l2.P0)
	denom := d1.Cross(d2)
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	w := l2.P0.Sub(l1.P0)
	t := w.Cross(d2) / denom
	u := w.Cross(d1) / denom
	const eps = 1e-12
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return Point{}, false
	}
	return l1.Eval(t), true
}

// onLine keeps the curve points that lie within the extent of l.
func onLine(l Line, pts []Point) []Point {
	d := l.P1.Sub(l.P0)
	lenSq := d.LengthSq()
	var out []Point
	for _, p := range pts {
		s := p.Sub(l.P0).Dot(d) / lenSq
		if s >= -1e-9 && s <= 1+1e-9 {
			out = append(out, p)
		}
	}
	return out
}

func lineQuad(l Line, q QuadBez) []Point {
	d := l.P1.Sub(l.P0)
	if d.LengthSq() == 0 {
		return nil
	}
	n := d.Perp()
	c0 := n.Dot(q.P0.Sub(l.P0))
	c1 := 2 * n.Dot(q.P1.Sub(q.P0))
	c2 := n.Dot(q.P0.Sub(q.P1).Add(q.P2.Sub(q.P1)))

	var pts []Point
	for _, t := range unitRoots(solveQuadratic(c2, c1, c0)) {
		pts = append(pts, q.Eval(t))
	}
	return onLine(l, pts)
}

func lineCubic(l Line, c CubicBez) []Point {
	d := l.P1.Sub(l.P0)
	if d.LengthSq() == 0 {
		return nil
	}
	n := d.Perp()
	p0 := c.P0.Vec()
	p1 := c.P1.Vec()
	p2 := c.P2.Vec()
	p3 := c.P3.Vec()

	k0 := n.Dot(c.P0.Sub(l.P0))
	k1 := n.Dot(p1.Sub(p0).Mul(3))
	k2 := n.Dot(p0.Sub(p1.Mul(2)).Add(p2).Mul(3))
	k3 := n.Dot(p3.Sub(p0).Add(p1.Sub(p2).Mul(3)))

	var pts []Point
	for _, t := range unitRoots(solveCubic(k3, k2, k1, k0)) {
		pts = append(pts, c.Eval(t))
	}
	return onLine(l, pts)
}

// polylineIntersections intersects every pair of lines, dropping repeats
// where a crossing lands on a shared polyline vertex.
func polylineIntersections(a, b []Line) []Point {
	var out []Point
	for _, la := range a {
		for _, lb := range b {
			p, ok := lineLine(la, lb)
			if !ok || containsApprox(out, p) {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func containsApprox(pts []Point, p Point) bool {
	for _, q := range pts {
		if q.Approx(p, continuityEpsilon) {
			return true
		}
	}
	return false
}
