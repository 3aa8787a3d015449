package mandala

import (
	"errors"
	"math"
	"testing"
)

func circleEpoch(t *testing.T, radius float64) *Epoch {
	t.Helper()
	e, err := NewEpoch(EpochConfig{Center: Pt(0, 0), Layout: CircleLayout{Radius: radius}})
	if err != nil {
		t.Fatalf("NewEpoch: %v", err)
	}
	return e
}

// fixedSweep returns a SegmentFunc placing a segment of the given sweep
// at the offered start, holding one line along its outer edge.
func fixedSweep(sweep float64) SegmentFunc {
	return func(start Angle, _ float64, center Point) (*MandalaSegment, error) {
		return NewMandalaSegment(SegmentConfig{
			Breadth:   2,
			RBase:     10,
			AngleBase: start,
			Sweep:     sweep,
			Center:    center,
			Drawing:   []SegmentDrawing{PathsDrawing{NewPathAt(Pt(0, 50)).LineTo(Pt(0, 100))}},
		})
	}
}

func TestNewEpoch_Validation(t *testing.T) {
	tests := []struct {
		name   string
		layout EpochLayout
		want   error
	}{
		{"missing", nil, ErrMissingField},
		{"zero circle", CircleLayout{}, ErrDegenerateGeometry},
		{"flat ellipse", EllipseLayout{Radii: V2(3, 0)}, ErrDegenerateGeometry},
		{"digon", PolygonLayout{Sides: 2, Radius: 5}, ErrDegenerateGeometry},
		{"empty rectangle", RectangleLayout{Size: Size{Width: 4}}, ErrDegenerateGeometry},
		{"circle", CircleLayout{Radius: 1}, nil},
		{"ellipse", EllipseLayout{Radii: V2(1, 2)}, nil},
		{"polygon", PolygonLayout{Sides: 6, Radius: 1}, nil},
		{"rectangle", RectangleLayout{Size: Size{Width: 4, Height: 2}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEpoch(EpochConfig{Layout: tt.layout})
			if !errors.Is(err, tt.want) || (tt.want == nil) != (err == nil) {
				t.Errorf("NewEpoch() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEpoch_DrawFill(t *testing.T) {
	e := circleEpoch(t, 10)
	h, err := e.DrawFill(fixedSweep(0.5))
	if err != nil {
		t.Fatalf("DrawFill: %v", err)
	}
	if e.Len() != 12 {
		t.Fatalf("Len() = %d, want 12", e.Len())
	}
	if h.Index() != 0 {
		t.Errorf("real segment at index %d, want 0", h.Index())
	}
	for i, seg := range e.Segments()[1:] {
		r, ok := seg.(ReplicaSegment)
		if !ok {
			t.Fatalf("segment %d is %T, want ReplicaSegment", i+1, seg)
		}
		want := NewAngle(0.5 * float64(i+1))
		if !almostEqual(r.AngleBase().Radians(), want.Radians(), 1e-12) {
			t.Errorf("replica %d at %v, want %v", i+1, r.AngleBase(), want)
		}
	}
	if got := len(e.Render()); got != 12 {
		t.Errorf("Render() returned %d paths, want 12", got)
	}
}

func TestEpoch_DrawFillExactDivision(t *testing.T) {
	e := circleEpoch(t, 10)
	if _, err := e.DrawFill(fixedSweep(TwoPi / 7)); err != nil {
		t.Fatalf("DrawFill: %v", err)
	}
	if e.Len() != 7 {
		t.Errorf("Len() = %d, want 7", e.Len())
	}
}

func TestEpoch_DrawRange(t *testing.T) {
	e := circleEpoch(t, 10)
	handles, err := e.DrawRange(fixedSweep(0.5), 0, 3)
	if err != nil {
		t.Fatalf("DrawRange: %v", err)
	}
	if len(handles) != 3 || e.Len() != 3 {
		t.Fatalf("DrawRange placed %d handles, %d segments, want 3", len(handles), e.Len())
	}
	if h, _ := e.DrawRange(fixedSweep(0.5), 2, 2); h != nil {
		t.Errorf("empty range placed %v", h)
	}
}

func TestEpoch_DrawRangeBudget(t *testing.T) {
	e := circleEpoch(t, 10)
	share := TwoPi / 3
	var starts []Angle
	var budgets []float64
	f := func(start Angle, maxSweep float64, center Point) (*MandalaSegment, error) {
		starts = append(starts, start)
		budgets = append(budgets, maxSweep)
		return fixedSweep(share)(start, maxSweep, center)
	}
	if _, err := e.DrawRange(f, 0, 3); err != nil {
		t.Fatalf("DrawRange: %v", err)
	}
	wantBudgets := []float64{share, 0, -share}
	wantStarts := []float64{0, share, 2 * share}
	for i := range 3 {
		if !almostEqual(budgets[i], wantBudgets[i], 1e-12) {
			t.Errorf("call %d budget = %v, want %v", i, budgets[i], wantBudgets[i])
		}
		if !almostEqual(starts[i].Radians(), wantStarts[i], 1e-12) {
			t.Errorf("call %d start = %v, want %v", i, starts[i], wantStarts[i])
		}
	}
}

func TestEpoch_DerivedAngles(t *testing.T) {
	e := circleEpoch(t, 10)
	if e.StartAngle() != 0 || e.RemainingSweep() != TwoPi {
		t.Fatalf("empty epoch: start %v remaining %v", e.StartAngle(), e.RemainingSweep())
	}
	_, err := e.DrawSegment(func(_ Angle, maxSweep float64, c Point) (*MandalaSegment, error) {
		if maxSweep != TwoPi {
			t.Errorf("maxSweep = %v, want 2π", maxSweep)
		}
		return fixedSweep(1)(0.5, maxSweep, c)
	})
	if err != nil {
		t.Fatalf("DrawSegment: %v", err)
	}
	if got := e.StartAngle().Radians(); !almostEqual(got, 1.5, 1e-12) {
		t.Errorf("StartAngle() = %v, want 1.5", got)
	}
	if got := e.RemainingSweep(); !almostEqual(got, TwoPi-1, 1e-12) {
		t.Errorf("RemainingSweep() = %v, want 2π-1", got)
	}
}

func TestEpoch_DrawSegmentErrors(t *testing.T) {
	e := circleEpoch(t, 10)
	if _, err := e.DrawSegment(nil); !errors.Is(err, ErrMissingField) {
		t.Errorf("DrawSegment(nil) = %v, want ErrMissingField", err)
	}
	if _, err := e.DrawSegment(fixedSweep(-1)); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("DrawSegment(negative sweep) = %v, want ErrDegenerateGeometry", err)
	}
	nothing := func(Angle, float64, Point) (*MandalaSegment, error) { return nil, nil }
	if _, err := e.DrawSegment(nothing); !errors.Is(err, ErrMissingField) {
		t.Errorf("DrawSegment(nil segment) = %v, want ErrMissingField", err)
	}
	if e.Len() != 0 {
		t.Errorf("failed draws appended %d segments", e.Len())
	}
}

func TestEpoch_ReplicaRendersRotatedOriginal(t *testing.T) {
	e := circleEpoch(t, 10)
	h, err := e.DrawSegment(fixedSweep(0.5))
	if err != nil {
		t.Fatalf("DrawSegment: %v", err)
	}
	rh, err := e.Replicate(h, NewAngle(math.Pi/2))
	if err != nil {
		t.Fatalf("Replicate: %v", err)
	}
	// Replicating a replica goes back to the original.
	if _, err := e.Replicate(rh, NewAngle(math.Pi)); err != nil {
		t.Fatalf("Replicate(replica): %v", err)
	}
	orig, err := e.Segment(rh)
	if err != nil || orig.ID() != 0 {
		t.Fatalf("Segment(replica) = %v, %v, want the original", orig, err)
	}

	paths := e.Render()
	if len(paths) != 3 {
		t.Fatalf("Render() returned %d paths, want 3", len(paths))
	}
	for i, angle := range []float64{math.Pi / 2, math.Pi} {
		want := paths[0].Rotate(angle, e.Center()).KeyPoints()
		got := paths[i+1].KeyPoints()
		for j := range want {
			if !pointsEqual(got[j], want[j], 1e-9) {
				t.Errorf("replica %d point %d = %v, want %v", i, j, got[j], want[j])
			}
		}
	}
}

func TestEpoch_ForeignHandle(t *testing.T) {
	a, b := circleEpoch(t, 10), circleEpoch(t, 10)
	h, err := a.DrawSegment(fixedSweep(1))
	if err != nil {
		t.Fatalf("DrawSegment: %v", err)
	}
	if _, err := b.DrawSegment(fixedSweep(1)); err != nil {
		t.Fatalf("DrawSegment: %v", err)
	}
	if _, err := b.Replicate(h, 0); !errors.Is(err, ErrForeignSegment) {
		t.Errorf("Replicate(foreign) = %v, want ErrForeignSegment", err)
	}
	if _, err := b.Segment(h); !errors.Is(err, ErrForeignSegment) {
		t.Errorf("Segment(foreign) = %v, want ErrForeignSegment", err)
	}
	if _, err := a.Replicate(SegmentHandle{}, 0); !errors.Is(err, ErrForeignSegment) {
		t.Errorf("Replicate(zero handle) = %v, want ErrForeignSegment", err)
	}
	if _, err := a.Handle(5); !errors.Is(err, ErrForeignSegment) {
		t.Errorf("Handle(5) = %v, want ErrForeignSegment", err)
	}
}

func TestEpoch_CorruptReplicaPanics(t *testing.T) {
	e := circleEpoch(t, 10)
	e.segments = append(e.segments, ReplicaSegment{id: 0, original: 3})
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUnknownReplica) {
			t.Errorf("recovered %v, want ErrUnknownReplica", r)
		}
	}()
	e.Render()
}

func TestEpoch_Outline(t *testing.T) {
	tests := []struct {
		name   string
		layout EpochLayout
		segs   int
	}{
		{"circle", CircleLayout{Radius: 5}, 1},
		{"ellipse", EllipseLayout{Radii: V2(5, 3)}, 1},
		{"polygon", PolygonLayout{Sides: 5, Radius: 5}, 5},
		{"rectangle", RectangleLayout{Size: Size{Width: 6, Height: 4}}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEpoch(EpochConfig{Center: Pt(10, 10), Layout: tt.layout, Outline: true})
			if err != nil {
				t.Fatalf("NewEpoch: %v", err)
			}
			paths := e.Render()
			if len(paths) != 1 {
				t.Fatalf("Render() returned %d paths, want 1", len(paths))
			}
			if paths[0].Len() != tt.segs || !paths[0].Closed() {
				t.Errorf("outline Len=%d Closed=%v, want %d closed", paths[0].Len(), paths[0].Closed(), tt.segs)
			}
		})
	}
}

func TestEpoch_SetLayout(t *testing.T) {
	e := circleEpoch(t, 10)
	if err := e.SetLayout(nil); !errors.Is(err, ErrMissingField) {
		t.Errorf("SetLayout(nil) = %v, want ErrMissingField", err)
	}
	if err := e.SetLayout(RectangleLayout{Size: Size{Width: 8, Height: 6}}); err != nil {
		t.Fatalf("SetLayout: %v", err)
	}
	if got := e.InnerRadius(); got != 3 {
		t.Errorf("InnerRadius() = %v, want 3", got)
	}
}

func TestEpoch_InnerRadius(t *testing.T) {
	e := circleEpoch(t, 20)
	if got := e.InnerRadius(); got != 20 {
		t.Errorf("empty InnerRadius() = %v, want 20", got)
	}
	if _, err := e.DrawFill(fixedSweep(1)); err != nil {
		t.Fatalf("DrawFill: %v", err)
	}
	if got := e.InnerRadius(); got != 8 {
		t.Errorf("InnerRadius() = %v, want 8", got)
	}
	hex, err := NewEpoch(EpochConfig{Layout: PolygonLayout{Sides: 6, Radius: 2}})
	if err != nil {
		t.Fatalf("NewEpoch: %v", err)
	}
	if got := hex.InnerRadius(); !almostEqual(got, math.Sqrt(3), 1e-12) {
		t.Errorf("hexagon InnerRadius() = %v, want √3", got)
	}
}

func TestEpoch_ScaleTranslate(t *testing.T) {
	e := circleEpoch(t, 20)
	h, err := e.DrawSegment(fixedSweep(1))
	if err != nil {
		t.Fatalf("DrawSegment: %v", err)
	}
	if err := e.Scale(0, Pt(0, 0)); !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("Scale(0) = %v, want ErrDegenerateGeometry", err)
	}
	if err := e.Scale(2, Pt(5, 0)); err != nil {
		t.Fatalf("Scale: %v", err)
	}
	e.Translate(V2(1, 1))

	if got := e.Center(); got != Pt(-4, 1) {
		t.Errorf("Center() = %v, want (-4, 1)", got)
	}
	if got := e.Layout().(CircleLayout).Radius; got != 40 {
		t.Errorf("layout radius = %v, want 40", got)
	}
	s, _ := e.Segment(h)
	if s.Center() != Pt(-4, 1) || s.RBase() != 20 || s.Breadth() != 4 {
		t.Errorf("segment center %v r_base %v breadth %v", s.Center(), s.RBase(), s.Breadth())
	}
}

func TestEpoch_Clone(t *testing.T) {
	e := circleEpoch(t, 10)
	h, err := e.DrawFill(fixedSweep(1))
	if err != nil {
		t.Fatalf("DrawFill: %v", err)
	}
	c := e.Clone()
	if _, err := c.Segment(h); !errors.Is(err, ErrForeignSegment) {
		t.Errorf("clone accepted a handle of the original: %v", err)
	}
	a, b := e.Render(), c.Render()
	if len(a) != len(b) {
		t.Fatalf("clone renders %d paths, original %d", len(b), len(a))
	}
	for i := range a {
		if a[i].SVGPathData() != b[i].SVGPathData() {
			t.Errorf("path %d differs", i)
		}
	}
	c.Translate(V2(5, 5))
	if e.Center() != Pt(0, 0) {
		t.Error("translating the clone moved the original")
	}
	orig, _ := e.Segment(h)
	if orig.Center() != Pt(0, 0) {
		t.Error("translating the clone moved the original's segments")
	}
}
