package mandala

import (
	"math"
	"testing"
)

func TestIntersect_Lines(t *testing.T) {
	tests := []struct {
		name string
		a, b Line
		want []Point
	}{
		{"crossing", Line{Pt(0, 0), Pt(10, 10)}, Line{Pt(0, 10), Pt(10, 0)}, []Point{Pt(5, 5)}},
		{"parallel", Line{Pt(0, 0), Pt(10, 0)}, Line{Pt(0, 1), Pt(10, 1)}, nil},
		{"collinear", Line{Pt(0, 0), Pt(10, 0)}, Line{Pt(5, 0), Pt(15, 0)}, nil},
		{"apart", Line{Pt(0, 0), Pt(1, 1)}, Line{Pt(5, 0), Pt(4, 1)}, nil},
		{"touching end", Line{Pt(0, 0), Pt(2, 0)}, Line{Pt(2, -1), Pt(2, 1)}, []Point{Pt(2, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersect(tt.a, tt.b)
			if len(got) != len(tt.want) {
				t.Fatalf("Intersect() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if !pointsEqual(got[i], tt.want[i], 1e-9) {
					t.Errorf("Intersect()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLineIntersection_Quad(t *testing.T) {
	q := QuadBez{Pt(0, 0), Pt(1, 1), Pt(2, 0)}
	got := LineIntersection(Line{Pt(-1, 0.25), Pt(3, 0.25)}, q)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 points", got)
	}
	xs := []float64{1 - math.Sqrt(0.5), 1 + math.Sqrt(0.5)}
	for _, p := range got {
		if !almostEqual(p.Y, 0.25, 1e-9) {
			t.Errorf("point %v is off the line", p)
		}
		if !almostEqual(p.X, xs[0], 1e-9) && !almostEqual(p.X, xs[1], 1e-9) {
			t.Errorf("point %v, want x in %v", p, xs)
		}
	}

	// The same line, clipped short of the second crossing.
	if got := LineIntersection(Line{Pt(-1, 0.25), Pt(1, 0.25)}, q); len(got) != 1 {
		t.Errorf("short line: got %v, want 1 point", got)
	}
}

func TestLineIntersection_Cubic(t *testing.T) {
	c := CubicBez{Pt(0, 0), Pt(0, 1), Pt(1, 1), Pt(1, 0)}
	got := LineIntersection(Line{Pt(0.5, -1), Pt(0.5, 2)}, c)
	if len(got) != 1 || !pointsEqual(got[0], Pt(0.5, 0.75), 1e-9) {
		t.Errorf("got %v, want [(0.5, 0.75)]", got)
	}
}

func TestIntersect_Circles(t *testing.T) {
	a := CirclePath(Pt(0, 0), 10)
	b := CirclePath(Pt(10, 0), 10)
	got := a.Intersections(b)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 points", got)
	}
	wantY := 10 * math.Sqrt(3) / 2
	for _, p := range got {
		if !almostEqual(p.X, 5, 0.5) || !almostEqual(math.Abs(p.Y), wantY, 0.5) {
			t.Errorf("point %v, want (5, ±%v)", p, wantY)
		}
	}
}

func TestIntersect_MoveToNeverCrosses(t *testing.T) {
	if got := Intersect(MoveTo{Pt(0, 0)}, Line{Pt(-1, 0), Pt(1, 0)}); got != nil {
		t.Errorf("got %v, want nil", got)
	}
	if got := Intersect(QuadBez{Pt(0, 0), Pt(1, 1), Pt(2, 0)}, MoveTo{Pt(1, 0.5)}); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
