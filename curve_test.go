package mandala

import (
	"errors"
	"math"
	"testing"
)

func pointsEqual(p1, p2 Point, eps float64) bool {
	return math.Abs(p1.X-p2.X) < eps && math.Abs(p1.Y-p2.Y) < eps
}

// -------------------------------------------------------------------
// Line / Bezier
// -------------------------------------------------------------------

func TestLine_Basics(t *testing.T) {
	l := Line{Pt(0, 0), Pt(3, 4)}
	if l.Length() != 5 {
		t.Errorf("Length() = %v, want 5", l.Length())
	}
	if l.Tolerable() != 0 {
		t.Errorf("Tolerable() = %v, want 0", l.Tolerable())
	}
	if got := l.Flatten(); len(got) != 1 || got[0] != l {
		t.Errorf("Flatten() = %v, want the line itself", got)
	}
	r := l.Rotate(math.Pi, Pt(0, 0)).(Line)
	if !pointsEqual(r.P1, Pt(-3, -4), epsilon) {
		t.Errorf("Rotate end = %v, want (-3, -4)", r.P1)
	}
	f := l.FlipAlongX(1).(Line)
	if f.P0 != Pt(0, 2) || f.P1 != Pt(3, -2) {
		t.Errorf("FlipAlongX = %v", f)
	}
	f = l.FlipAlongY(0).(Line)
	if f.P1 != Pt(-3, 4) {
		t.Errorf("FlipAlongY end = %v, want (-3, 4)", f.P1)
	}
}

func TestQuadBez_LengthClosedForm(t *testing.T) {
	tests := []struct {
		name string
		q    QuadBez
		want float64
	}{
		{"parabola", QuadBez{Pt(0, 0), Pt(1, 1), Pt(2, 0)}, 0.5 * (math.Sqrt(8) + 2*math.Asinh(1))},
		{"straight", QuadBez{Pt(0, 0), Pt(1, 0), Pt(2, 0)}, 2},
		{"doubling back", QuadBez{Pt(0, 0), Pt(2, 0), Pt(0, 0)}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.Length()
			if !almostEqual(got, tt.want, 1e-3) {
				t.Errorf("Length() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuadBez_LengthMatchesSubdivision(t *testing.T) {
	q := QuadBez{Pt(10, 3), Pt(-4, 20), Pt(17, 9)}
	want := quadLengthRecursive(q, 1e-12, 0)
	if got := q.Length(); !almostEqual(got, want, 1e-3) {
		t.Errorf("Length() = %v, subdivision = %v", got, want)
	}
}

func TestCubicBez_Inflections(t *testing.T) {
	s := CubicBez{Pt(0, 0), Pt(1, 1), Pt(2, -1), Pt(3, 0)}
	infl := s.Inflections()
	if len(infl) != 1 || !almostEqual(infl[0], 0.5, 1e-9) {
		t.Errorf("Inflections() = %v, want [0.5]", infl)
	}
	arch := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	if got := arch.Inflections(); len(got) != 0 {
		t.Errorf("Inflections() of an arch = %v, want none", got)
	}
}

func TestTolerable_Clamped(t *testing.T) {
	segs := []PathSegment{
		QuadBez{Pt(0, 0), Pt(1, 1), Pt(2, 0)},
		QuadBez{Pt(0, 0), Pt(0, 0), Pt(2, 0)},
		CubicBez{Pt(0, 0), Pt(1, 1), Pt(2, -1), Pt(3, 0)},
		CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)},
		SweepArc{Center: Pt(0, 0), Radii: V2(10, 10), Sweep: TwoPi},
		SweepArc{Center: Pt(0, 0), Radii: V2(10, 10), Sweep: 0.1},
		QuadBez{},
	}
	for i, s := range segs {
		tol := s.Tolerable()
		if tol < machineEpsilon || tol > 1 {
			t.Errorf("segment %d: Tolerable() = %v outside [eps, 1]", i, tol)
		}
	}
}

func TestSweepArc_TolerableFormula(t *testing.T) {
	s := SweepArc{Center: Pt(0, 0), Radii: V2(10, 20), Sweep: TwoPi}
	if got, want := s.Tolerable(), 1/TwoPi; !almostEqual(got, want, epsilon) {
		t.Errorf("Tolerable() = %v, want %v", got, want)
	}
}

func TestCubicBez_FlattenStaysContinuous(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(30, 80), Pt(70, -80), Pt(100, 0)}
	lines := c.Flatten()
	if len(lines) < 2 {
		t.Fatalf("Flatten() produced %d lines", len(lines))
	}
	if lines[0].P0 != c.P0 || lines[len(lines)-1].P1 != c.P3 {
		t.Error("flattened polyline does not span the curve")
	}
	for i := 1; i < len(lines); i++ {
		if lines[i-1].P1 != lines[i].P0 {
			t.Fatalf("gap between line %d and %d", i-1, i)
		}
	}
}

func TestCubicBez_BoundingBox(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	bb := c.BoundingBox()
	if !almostEqual(bb.Max.Y, 0.75, 1e-9) || bb.Min != Pt(0, 0) || bb.Max.X != 1 {
		t.Errorf("BoundingBox() = %v, want (0,0)-(1,0.75)", bb)
	}
}

// -------------------------------------------------------------------
// Arcs
// -------------------------------------------------------------------

func TestArc_CenterForm(t *testing.T) {
	a := Arc{P0: Pt(1, 0), P1: Pt(0, 1), Radii: V2(1, 1), Sweep: true}
	s, ok := a.CenterForm()
	if !ok {
		t.Fatal("CenterForm() reported degenerate")
	}
	if !pointsEqual(s.Center, Pt(0, 0), 1e-12) {
		t.Errorf("center = %v, want origin", s.Center)
	}
	if !almostEqual(s.Start.Radians(), 0, 1e-12) || !almostEqual(s.Sweep, math.Pi/2, 1e-12) {
		t.Errorf("start/sweep = %v/%v, want 0/π/2", s.Start, s.Sweep)
	}

	large := Arc{P0: Pt(1, 0), P1: Pt(0, 1), Radii: V2(1, 1), LargeArc: true, Sweep: false}
	s, _ = large.CenterForm()
	if !pointsEqual(s.Center, Pt(0, 0), 1e-12) || !almostEqual(s.Sweep, -3*math.Pi/2, 1e-12) {
		t.Errorf("large arc center/sweep = %v/%v, want origin/-3π/2", s.Center, s.Sweep)
	}
}

func TestArc_CenterFormScalesSmallRadii(t *testing.T) {
	a := Arc{P0: Pt(-2, 0), P1: Pt(2, 0), Radii: V2(1, 1), Sweep: true}
	s, ok := a.CenterForm()
	if !ok {
		t.Fatal("CenterForm() reported degenerate")
	}
	if !almostEqual(s.Radii.X, 2, 1e-12) || !pointsEqual(s.Center, Pt(0, 0), 1e-12) {
		t.Errorf("radii/center = %v/%v, want 2/origin", s.Radii, s.Center)
	}
}

func TestSweepArc_EndpointRoundTrip(t *testing.T) {
	s := SweepArc{Center: Pt(3, 4), Radii: V2(5, 2), Start: 0.3, Sweep: 2.5, XRotation: 0.4}
	a, ok := s.EndpointArc()
	if !ok {
		t.Fatal("EndpointArc() failed for a partial arc")
	}
	back, ok := a.CenterForm()
	if !ok {
		t.Fatal("CenterForm() failed")
	}
	if !pointsEqual(back.Center, s.Center, 1e-9) || !almostEqual(back.Sweep, s.Sweep, 1e-9) {
		t.Errorf("round trip = %+v, want %+v", back, s)
	}
	if _, ok := (SweepArc{Radii: V2(1, 1), Sweep: TwoPi}).EndpointArc(); ok {
		t.Error("EndpointArc() succeeded for a full turn")
	}
}

func TestSweepArc_CubicsAreContinuous(t *testing.T) {
	s := SweepArc{Center: Pt(0, 0), Radii: V2(10, 10), Start: 1, Sweep: -5}
	cubics := s.Cubics()
	if len(cubics) != 4 {
		t.Fatalf("len(Cubics()) = %d, want 4", len(cubics))
	}
	if cubics[0].P0 != s.From() || cubics[3].P3 != s.To() {
		t.Error("decomposition does not span the arc")
	}
	for i := 1; i < len(cubics); i++ {
		if cubics[i-1].P3 != cubics[i].P0 {
			t.Errorf("gap between cubic %d and %d", i-1, i)
		}
	}
	for _, c := range cubics {
		mid := c.Eval(0.5)
		if d := mid.Distance(s.Center); !almostEqual(d, 10, 0.01) {
			t.Errorf("cubic midpoint at radius %v, want 10", d)
		}
	}
}

func TestSweepArc_FullTurnEndsAtStart(t *testing.T) {
	tests := []struct {
		name string
		arc  SweepArc
	}{
		{"clockwise circle", SweepArc{Center: Pt(150, 100), Radii: V2(100, 100), Sweep: TwoPi}},
		{"counter-clockwise", SweepArc{Center: Pt(-3, 7), Radii: V2(4, 4), Start: 1.3, Sweep: -TwoPi}},
		{"rotated ellipse", SweepArc{Center: Pt(1, 2), Radii: V2(5, 2), Start: 0.7, Sweep: TwoPi, XRotation: 0.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.arc.To() != tt.arc.From() {
				t.Errorf("To() = %v, want From() = %v", tt.arc.To(), tt.arc.From())
			}
			cubics := tt.arc.Cubics()
			if cubics[len(cubics)-1].P3 != tt.arc.From() {
				t.Errorf("last cubic ends at %v, want %v", cubics[len(cubics)-1].P3, tt.arc.From())
			}
		})
	}
}

func TestArc_RotateViaCenter(t *testing.T) {
	a := Arc{P0: Pt(1, 0), P1: Pt(0, 1), Radii: V2(1, 1), Sweep: true}
	r := a.Rotate(math.Pi/2, Pt(0, 0)).(Arc)
	if !pointsEqual(r.P0, Pt(0, 1), 1e-12) || !pointsEqual(r.P1, Pt(-1, 0), 1e-12) {
		t.Errorf("rotated endpoints = %v -> %v, want (0,1) -> (-1,0)", r.P0, r.P1)
	}
	if !r.Sweep || r.LargeArc {
		t.Error("rotation changed the arc flags")
	}

	s := a.Scale(2, Pt(0, 0)).(Arc)
	if !pointsEqual(s.P1, Pt(0, 2), 1e-12) || !almostEqual(s.Radii.X, 2, 1e-12) {
		t.Errorf("scaled arc = %+v", s)
	}
}

func TestArc_RotateDegeneratePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDegenerateArc) {
			t.Errorf("recover() = %v, want ErrDegenerateArc", r)
		}
	}()
	Arc{P0: Pt(0, 0), P1: Pt(1, 0), Radii: V2(0, 1)}.Rotate(1, Pt(0, 0))
}

func TestArc_StraightLengthAndFlatten(t *testing.T) {
	a := Arc{P0: Pt(0, 0), P1: Pt(3, 4), Radii: V2(0, 0)}
	if a.Length() != 5 {
		t.Errorf("Length() = %v, want 5", a.Length())
	}
	if got := a.Flatten(); len(got) != 1 {
		t.Errorf("Flatten() = %v, want one line", got)
	}
}

func TestSweepArc_Flip(t *testing.T) {
	s := SweepArc{Center: Pt(2, 0), Radii: V2(1, 1), Start: 0, Sweep: math.Pi / 2}
	fy := s.FlipAlongY(0)
	if !pointsEqual(fy.From(), Pt(-3, 0), 1e-12) || !pointsEqual(fy.To(), Pt(-2, 1), 1e-12) {
		t.Errorf("FlipAlongY = %v -> %v, want (-3,0) -> (-2,1)", fy.From(), fy.To())
	}
	fx := s.FlipAlongX(0)
	if !pointsEqual(fx.From(), Pt(3, 0), 1e-12) || !pointsEqual(fx.To(), Pt(2, -1), 1e-12) {
		t.Errorf("FlipAlongX = %v -> %v, want (3,0) -> (2,-1)", fx.From(), fx.To())
	}
}

func TestArc_FlipMatchesSweepArc(t *testing.T) {
	s := SweepArc{Center: Pt(1, 1), Radii: V2(3, 2), Start: 0.2, Sweep: 1.3, XRotation: 0.5}
	a, _ := s.EndpointArc()
	fa, _ := a.FlipAlongY(4).(Arc).CenterForm()
	fs := s.FlipAlongY(4).(SweepArc)
	if !pointsEqual(fa.Center, fs.Center, 1e-9) || !almostEqual(fa.Sweep, fs.Sweep, 1e-9) {
		t.Errorf("flipped endpoint arc %+v disagrees with flipped center arc %+v", fa, fs)
	}
}
