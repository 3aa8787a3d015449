package mandala

import (
	"math"
	"testing"
)

const epsilon = 1e-10

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestNewAngle_Wraps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"inside", 1.5, 1.5},
		{"full turn", TwoPi, 0},
		{"over", TwoPi + 0.25, 0.25},
		{"negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"many turns", 7*TwoPi + 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewAngle(tt.in).Radians()
			if !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("NewAngle(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if got < 0 || got >= TwoPi {
				t.Errorf("NewAngle(%v) = %v outside [0, 2π)", tt.in, got)
			}
		})
	}
}

func TestNewAngle_TinyNegativeStaysInRange(t *testing.T) {
	a := NewAngle(-1e-18)
	if a.Radians() < 0 || a.Radians() >= TwoPi {
		t.Errorf("NewAngle(-1e-18) = %v outside [0, 2π)", a)
	}
}

func TestDegrees(t *testing.T) {
	if got := Degrees(180).Radians(); !almostEqual(got, math.Pi, epsilon) {
		t.Errorf("Degrees(180) = %v, want π", got)
	}
	if got := NewAngle(math.Pi / 2).Degrees(); !almostEqual(got, 90, epsilon) {
		t.Errorf("Degrees() = %v, want 90", got)
	}
}

func TestRect_Basics(t *testing.T) {
	r := RectXYWH(10, 20, 30, 40)
	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("size = %vx%v, want 30x40", r.Width(), r.Height())
	}
	if r.Area() != 1200 {
		t.Errorf("Area() = %v, want 1200", r.Area())
	}
	if r.Center() != Pt(25, 40) {
		t.Errorf("Center() = %v, want (25, 40)", r.Center())
	}
	if !r.Contains(Pt(10, 60)) || r.Contains(Pt(9, 30)) {
		t.Error("Contains boundary behaviour is wrong")
	}
	n := NewRect(Pt(5, 5), Pt(0, 0))
	if n.Min != Pt(0, 0) || n.Max != Pt(5, 5) {
		t.Errorf("NewRect did not normalize: %v", n)
	}
	u := n.Union(RectXYWH(3, 3, 10, 1))
	if u.Max != Pt(13, 5) {
		t.Errorf("Union max = %v, want (13, 5)", u.Max)
	}
}

func TestPoint_RotateAndScaleAround(t *testing.T) {
	p := Pt(2, 1)
	got := p.RotateAround(Pt(1, 1), math.Pi/2)
	if !got.Approx(Pt(1, 2), 1e-12) {
		t.Errorf("RotateAround = %v, want (1, 2)", got)
	}
	got = p.ScaleAround(Pt(1, 1), 3)
	if !got.Approx(Pt(4, 1), 1e-12) {
		t.Errorf("ScaleAround = %v, want (4, 1)", got)
	}
}

func TestVec2_AngleTo(t *testing.T) {
	if got := V2(1, 0).AngleTo(V2(0, 1)); !almostEqual(got, math.Pi/2, epsilon) {
		t.Errorf("AngleTo = %v, want π/2", got)
	}
	if got := V2(1, 0).AngleTo(V2(0, -1)); !almostEqual(got, -math.Pi/2, epsilon) {
		t.Errorf("AngleTo = %v, want -π/2", got)
	}
}
