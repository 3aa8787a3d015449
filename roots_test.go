package mandala

import (
	"math"
	"testing"
)

func verifyRoots(t *testing.T, name string, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s: got %d roots %v, want %d %v", name, len(got), got, len(want), want)
		return
	}
	for i := range got {
		if !almostEqual(got[i], want[i], eps) {
			t.Errorf("%s: root[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    []float64
	}{
		{"two roots", 1, 0, -5, []float64{-math.Sqrt(5), math.Sqrt(5)}},
		{"no real roots", 1, 0, 5, nil},
		{"double root", 1, -2, 1, []float64{1}},
		{"linear", 0, 2, -4, []float64{2}},
		{"all zero", 0, 0, 0, []float64{0}},
		{"constant", 0, 0, 3, nil},
		{"factored", 2, -6, 4, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifyRoots(t, tt.name, solveQuadratic(tt.a, tt.b, tt.c), tt.want, 1e-10)
		})
	}
}

func TestSolveCubic(t *testing.T) {
	tests := []struct {
		name       string
		a, b, c, d float64
		want       []float64
	}{
		{"three roots", 1, -6, 11, -6, []float64{1, 2, 3}},
		{"one root", 1, 0, 0, -8, []float64{2}},
		{"degenerate to quadratic", 0, 1, -3, 2, []float64{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifyRoots(t, tt.name, solveCubic(tt.a, tt.b, tt.c, tt.d), tt.want, 1e-9)
		})
	}
}

func TestUnitRoots(t *testing.T) {
	got := unitRoots([]float64{-0.5, -1e-13, 0.5, 1 + 1e-13, 2})
	verifyRoots(t, "unit", got, []float64{0, 0.5, 1}, 1e-15)
}
