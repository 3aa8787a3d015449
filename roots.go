package mandala

import (
	"math"
	"sort"
)

// Real polynomial roots for curve parameters: inflections, line crossings
// and extrema. Results are sorted ascending.

// solveQuadratic returns the real roots of a*x^2 + b*x + c = 0.
// A vanishing leading coefficient degrades to the linear case.
func solveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		if b == 0 && c == 0 {
			return []float64{0}
		}
		return nil
	}

	disc := sc1*sc1 - 4*sc0
	var r1, r2 float64
	switch {
	case !isFinite(disc):
		r1 = -sc1
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-0.5 * sc1}
	default:
		// Avoids cancellation between -b and sqrt(disc).
		r1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(disc), sc1))
	}
	r2 = sc0 / r1
	if !isFinite(r2) {
		return []float64{r1}
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return []float64{r1, r2}
}

// solveCubic returns the real roots of a*x^3 + b*x^2 + c*x + d = 0 using
// Blinn's method (https://momentsingraphics.de/CubicRoots.html).
func solveCubic(a, b, c, d float64) []float64 {
	const third = 1.0 / 3.0
	c2 := b * third / a
	c1 := c * third / a
	c0 := d / a
	if !isFinite(c2) || !isFinite(c1) || !isFinite(c0) {
		return solveQuadratic(b, c, d)
	}

	d0 := -c2*c2 + c1
	d1 := -c1*c2 + c0
	d2 := c2*c0 - c1*c1
	disc := 4*d0*d2 - d1*d1
	de := -2*c2*d0 + d1

	var roots []float64
	switch {
	case disc < 0:
		sq := math.Sqrt(-0.25 * disc)
		r := -0.5 * de
		roots = []float64{math.Cbrt(r+sq) + math.Cbrt(r-sq) - c2}
	case disc == 0:
		t := math.Copysign(math.Sqrt(-d0), de)
		roots = []float64{t - c2, -2*t - c2}
	default:
		th := math.Atan2(math.Sqrt(disc), -de) * third
		sin, cos := math.Sincos(th)
		ss3 := sin * math.Sqrt(3)
		t := 2 * math.Sqrt(-d0)
		roots = []float64{
			t*cos - c2,
			t*0.5*(-cos+ss3) - c2,
			t*0.5*(-cos-ss3) - c2,
		}
	}
	sort.Float64s(roots)
	return roots
}

// unitRoots keeps the roots inside [0, 1], snapping values within 1e-12 of
// the boundaries onto them.
func unitRoots(roots []float64) []float64 {
	const eps = 1e-12
	var out []float64
	for _, r := range roots {
		if r < -eps || r > 1+eps {
			continue
		}
		out = append(out, math.Min(math.Max(r, 0), 1))
	}
	return out
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
