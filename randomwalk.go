package mandala

import (
	"fmt"
	"math"
)

// WalkConfig configures [RandomWalk].
type WalkConfig struct {
	// Vertices is the number of corners of the walk, at least 2.
	Vertices int
	// Symmetry is the probability that the walk is mirrored across c = 0.
	Symmetry float64
	// Normalized is the extent of the local patch. Zero means
	// DefaultNormalized.
	Normalized float64
}

// RandomWalk returns a closed polyline inside the local patch
// [-n/2, n/2] x [0, n]. Each vertex steps at most a quarter of the patch
// from the previous one. With probability cfg.Symmetry only half the
// vertices are walked, on the c >= 0 side, and the other half is their
// mirror image.
func RandomWalk(rng *Rand, cfg WalkConfig) (*Path, error) {
	n := cfg.Normalized
	if n == 0 {
		n = DefaultNormalized
	}
	if cfg.Vertices < 2 || !(n > 0) {
		return nil, fmt.Errorf("random walk with %d vertices in %v: %w", cfg.Vertices, n, ErrDegenerateGeometry)
	}
	if rng == nil {
		return nil, fmt.Errorf("random walk: rng: %w", ErrMissingField)
	}

	half := n / 2
	if rng.Bool(cfg.Symmetry) {
		side := walk(rng, (cfg.Vertices+1)/2, 0, half, n)
		pts := append([]Point(nil), side...)
		for i := len(side) - 1; i >= 0; i-- {
			pts = append(pts, Pt(-side[i].X, side[i].Y))
		}
		return polyline(pts), nil
	}
	return polyline(walk(rng, cfg.Vertices, -half, half, n)), nil
}

// walk takes count steps inside [cMin, cMax] x [0, n].
func walk(rng *Rand, count int, cMin, cMax, n float64) []Point {
	step := n / 4
	p := Pt(rng.Range(cMin, cMax), rng.Range(0, n))
	pts := make([]Point, 0, count)
	pts = append(pts, p)
	for len(pts) < count {
		p = Pt(
			clamp(p.X+rng.Range(-step, step), cMin, cMax),
			clamp(p.Y+rng.Range(-step, step), 0, n),
		)
		pts = append(pts, p)
	}
	return pts
}

func polyline(pts []Point) *Path {
	p := NewPathAt(pts[0])
	for _, pt := range pts[1:] {
		p.LineTo(pt)
	}
	return p.Close()
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
