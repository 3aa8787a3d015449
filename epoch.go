package mandala

import (
	"fmt"
	"math"
)

// EpochLayout is the shape an epoch is laid out on. The set of variants
// is closed: [CircleLayout], [EllipseLayout], [PolygonLayout] and
// [RectangleLayout]. Every layout is centered on the epoch center.
type EpochLayout interface {
	isEpochLayout()
	validate() error
	// radius is the largest circle around the center inside the layout.
	radius() float64
	outline(center Point) *Path
	scaled(factor float64) EpochLayout
}

// CircleLayout lays an epoch out on a circle.
type CircleLayout struct {
	Radius float64
}

func (CircleLayout) isEpochLayout() {}

func (l CircleLayout) validate() error {
	if !(l.Radius > 0) {
		return fmt.Errorf("circle layout radius %v: %w", l.Radius, ErrDegenerateGeometry)
	}
	return nil
}

func (l CircleLayout) radius() float64 { return l.Radius }
func (l CircleLayout) outline(center Point) *Path { return CirclePath(center, l.Radius) }
func (l CircleLayout) scaled(f float64) EpochLayout { return CircleLayout{Radius: l.Radius * f} }

// EllipseLayout lays an epoch out on an axis-aligned ellipse.
type EllipseLayout struct {
	Radii Vec2
}

func (EllipseLayout) isEpochLayout() {}

func (l EllipseLayout) validate() error {
	if !(l.Radii.X > 0) || !(l.Radii.Y > 0) {
		return fmt.Errorf("ellipse layout radii %v: %w", l.Radii, ErrDegenerateGeometry)
	}
	return nil
}

func (l EllipseLayout) radius() float64 { return l.Radii.Min() }
func (l EllipseLayout) outline(center Point) *Path { return EllipsePath(center, l.Radii) }
func (l EllipseLayout) scaled(f float64) EpochLayout { return EllipseLayout{Radii: l.Radii.Mul(f)} }

// PolygonLayout lays an epoch out on a regular polygon with its first
// vertex pointing right.
type PolygonLayout struct {
	Sides  int
	Radius float64
}

func (PolygonLayout) isEpochLayout() {}

func (l PolygonLayout) validate() error {
	if l.Sides < 3 {
		return fmt.Errorf("polygon layout with %d sides: %w", l.Sides, ErrDegenerateGeometry)
	}
	if !(l.Radius > 0) {
		return fmt.Errorf("polygon layout radius %v: %w", l.Radius, ErrDegenerateGeometry)
	}
	return nil
}

// radius returns the apothem.
func (l PolygonLayout) radius() float64 {
	return l.Radius * math.Cos(math.Pi/float64(l.Sides))
}

func (l PolygonLayout) outline(center Point) *Path {
	return PolygonPath(center, l.Sides, l.Radius, 0)
}

func (l PolygonLayout) scaled(f float64) EpochLayout {
	return PolygonLayout{Sides: l.Sides, Radius: l.Radius * f}
}

// RectangleLayout lays an epoch out on a rectangle.
type RectangleLayout struct {
	Size Size
}

func (RectangleLayout) isEpochLayout() {}

func (l RectangleLayout) validate() error {
	if !l.Size.valid() {
		return fmt.Errorf("rectangle layout size %v: %w", l.Size, ErrDegenerateGeometry)
	}
	return nil
}

func (l RectangleLayout) radius() float64 { return l.Size.Min() / 2 }
func (l RectangleLayout) outline(center Point) *Path { return RectPath(l.Size, center) }
func (l RectangleLayout) scaled(f float64) EpochLayout {
	return RectangleLayout{Size: Size{Width: l.Size.Width * f, Height: l.Size.Height * f}}
}

// EpochSegment is one entry of an epoch: a [*MandalaSegment] or a
// [ReplicaSegment].
type EpochSegment interface {
	isEpochSegment()
	ID() int
	AngleBase() Angle
}

// ReplicaSegment reuses the geometry of a real segment of the same epoch
// at a different angle.
type ReplicaSegment struct {
	id        int
	original  int
	angleBase Angle
}

func (ReplicaSegment) isEpochSegment() {}

// ID returns the replica identifier.
func (r ReplicaSegment) ID() int { return r.id }

// AngleBase returns the angle the original is rotated to.
func (r ReplicaSegment) AngleBase() Angle { return r.angleBase }

// epochKey identifies one epoch value so handles cannot cross epochs.
type epochKey struct{ _ byte }

// SegmentHandle addresses a segment inside the epoch that minted it.
// The zero value addresses nothing.
type SegmentHandle struct {
	key   *epochKey
	index int
}

// Index returns the position of the segment in its epoch.
func (h SegmentHandle) Index() int { return h.index }

// SegmentFunc builds the next segment of an epoch. start is where the
// segment should begin, maxSweep the angular budget offered to it and
// center the epoch center.
type SegmentFunc func(start Angle, maxSweep float64, center Point) (*MandalaSegment, error)

// EpochConfig describes an [Epoch]. Layout is required.
type EpochConfig struct {
	ID      int
	Center  Point
	Layout  EpochLayout
	Outline bool // render the layout shape with the segments
}

// Epoch is a ring of segments placed around a shared center under a
// full-turn angular budget. Segments are append-only. The running start
// angle and the remaining budget are derived from them.
type Epoch struct {
	id       int
	center   Point
	layout   EpochLayout
	outline  bool
	segments []EpochSegment
	key      *epochKey
}

// NewEpoch validates cfg and builds an empty epoch.
func NewEpoch(cfg EpochConfig) (*Epoch, error) {
	if cfg.Layout == nil {
		return nil, fmt.Errorf("epoch %d: layout: %w", cfg.ID, ErrMissingField)
	}
	if err := cfg.Layout.validate(); err != nil {
		return nil, fmt.Errorf("epoch %d: %w", cfg.ID, err)
	}
	return &Epoch{
		id:      cfg.ID,
		center:  cfg.Center,
		layout:  cfg.Layout,
		outline: cfg.Outline,
		key:     &epochKey{},
	}, nil
}

// ID returns the epoch identifier.
func (e *Epoch) ID() int { return e.id }

// Center returns the shared center of the segments.
func (e *Epoch) Center() Point { return e.center }

// Layout returns the current layout.
func (e *Epoch) Layout() EpochLayout { return e.layout }

// Outline reports whether the layout shape is rendered.
func (e *Epoch) Outline() bool { return e.outline }

// Segments returns the segments in placement order. The slice must not be
// modified.
func (e *Epoch) Segments() []EpochSegment { return e.segments }

// Len returns the number of segments, replicas included.
func (e *Epoch) Len() int { return len(e.segments) }

// SetLayout replaces the layout. Segments keep their placement; only the
// outline and InnerRadius follow the new layout.
func (e *Epoch) SetLayout(l EpochLayout) error {
	if l == nil {
		return fmt.Errorf("epoch %d: layout: %w", e.id, ErrMissingField)
	}
	if err := l.validate(); err != nil {
		return fmt.Errorf("epoch %d: %w", e.id, err)
	}
	e.layout = l
	return nil
}

// Handle returns the handle of the i-th segment.
func (e *Epoch) Handle(i int) (SegmentHandle, error) {
	if i < 0 || i >= len(e.segments) {
		return SegmentHandle{}, fmt.Errorf("epoch %d: segment index %d of %d: %w",
			e.id, i, len(e.segments), ErrForeignSegment)
	}
	return SegmentHandle{key: e.key, index: i}, nil
}

// Segment returns the real segment behind h. For a replica that is its
// original.
func (e *Epoch) Segment(h SegmentHandle) (*MandalaSegment, error) {
	if h.key != e.key || h.index < 0 || h.index >= len(e.segments) {
		return nil, fmt.Errorf("epoch %d: %w", e.id, ErrForeignSegment)
	}
	return e.resolve(e.segments[h.index]), nil
}

// resolve returns the real segment behind seg. A replica whose original
// is missing means the epoch is corrupt.
func (e *Epoch) resolve(seg EpochSegment) *MandalaSegment {
	switch s := seg.(type) {
	case *MandalaSegment:
		return s
	case ReplicaSegment:
		if s.original >= 0 && s.original < len(e.segments) {
			if orig, ok := e.segments[s.original].(*MandalaSegment); ok {
				return orig
			}
		}
	}
	panic(fmt.Errorf("epoch %d: segment %d: %w", e.id, seg.ID(), ErrUnknownReplica))
}

// sweepOf returns the sweep of seg; replicas share their original's.
func (e *Epoch) sweepOf(seg EpochSegment) float64 {
	return e.resolve(seg).sweep
}

// StartAngle returns the wrapped sum of angle base plus sweep over every
// segment placed so far.
func (e *Epoch) StartAngle() Angle {
	var sum float64
	for _, s := range e.segments {
		sum += s.AngleBase().Radians() + e.sweepOf(s)
	}
	return NewAngle(sum)
}

// RemainingSweep returns the full turn minus the sweeps placed so far.
// It goes negative when callers overfill the epoch.
func (e *Epoch) RemainingSweep() float64 {
	remaining := TwoPi
	for _, s := range e.segments {
		remaining -= e.sweepOf(s)
	}
	return remaining
}

// place calls f and appends its segment.
func (e *Epoch) place(f SegmentFunc, start Angle, maxSweep float64) (SegmentHandle, *MandalaSegment, error) {
	if f == nil {
		return SegmentHandle{}, nil, fmt.Errorf("epoch %d: segment func: %w", e.id, ErrMissingField)
	}
	seg, err := f(start, maxSweep, e.center)
	if err != nil {
		return SegmentHandle{}, nil, fmt.Errorf("epoch %d: segment %d: %w", e.id, len(e.segments), err)
	}
	if seg == nil {
		return SegmentHandle{}, nil, fmt.Errorf("epoch %d: segment %d: %w", e.id, len(e.segments), ErrMissingField)
	}
	e.segments = append(e.segments, seg)
	return SegmentHandle{key: e.key, index: len(e.segments) - 1}, seg, nil
}

// DrawSegment asks f for one segment at StartAngle with the remaining
// budget and appends it as returned. Overfilling is not prevented.
func (e *Epoch) DrawSegment(f SegmentFunc) (SegmentHandle, error) {
	h, _, err := e.place(f, e.StartAngle(), e.RemainingSweep())
	return h, err
}

// DrawFill draws one real segment and then fills the rest of the turn
// with replicas of it at successive sweep offsets. It returns the handle
// of the real segment.
func (e *Epoch) DrawFill(f SegmentFunc) (SegmentHandle, error) {
	h, seg, err := e.place(f, e.StartAngle(), e.RemainingSweep())
	if err != nil {
		return h, err
	}
	n := int(math.Floor(e.RemainingSweep()/seg.sweep + 1e-9))
	for i := 1; i <= n; i++ {
		e.appendReplica(h.index, seg.angleBase.Add(float64(i)*seg.sweep))
	}
	Logger().Debug("filled epoch", "epoch", e.id, "sweep", seg.sweep, "replicas", max(n, 0))
	return h, nil
}

// DrawRange draws end-start segments. The remaining budget is shared out
// evenly once; after that the budget offered to f shrinks by each
// returned sweep and the start angle advances by it, so segments wider
// than their share leave later calls with little or negative budget.
func (e *Epoch) DrawRange(f SegmentFunc, start, end int) ([]SegmentHandle, error) {
	n := end - start
	if n <= 0 {
		return nil, nil
	}
	maxSweep := e.RemainingSweep() / float64(n)
	angle := e.StartAngle()
	handles := make([]SegmentHandle, 0, n)
	for range n {
		h, seg, err := e.place(f, angle, maxSweep)
		if err != nil {
			return handles, err
		}
		handles = append(handles, h)
		maxSweep -= seg.sweep
		angle = angle.Add(seg.sweep)
	}
	return handles, nil
}

// Replicate appends a replica of the segment behind h rotated to angle.
// Replicating a replica replicates its original.
func (e *Epoch) Replicate(h SegmentHandle, angle Angle) (SegmentHandle, error) {
	if h.key != e.key || h.index < 0 || h.index >= len(e.segments) {
		return SegmentHandle{}, fmt.Errorf("epoch %d: replicate: %w", e.id, ErrForeignSegment)
	}
	original := h.index
	if r, ok := e.segments[original].(ReplicaSegment); ok {
		original = r.original
	}
	return e.appendReplica(original, angle), nil
}

func (e *Epoch) appendReplica(original int, angle Angle) SegmentHandle {
	e.segments = append(e.segments, ReplicaSegment{
		id:        len(e.segments),
		original:  original,
		angleBase: angle,
	})
	return SegmentHandle{key: e.key, index: len(e.segments) - 1}
}

// Render returns the paths of every segment in placement order, followed
// by the layout outline when enabled. A replica renders its original
// rotated by the difference of their angle bases.
func (e *Epoch) Render() []*Path {
	var out []*Path
	for _, seg := range e.segments {
		switch s := seg.(type) {
		case *MandalaSegment:
			out = append(out, s.Render()...)
		case ReplicaSegment:
			orig := e.resolve(s)
			delta := s.angleBase.Radians() - orig.angleBase.Radians()
			for _, p := range orig.Render() {
				out = append(out, p.Rotate(delta, orig.center))
			}
		}
	}
	if e.outline {
		out = append(out, e.layout.outline(e.center))
	}
	return out
}

// InnerRadius returns the radius of the free disc inside the epoch: the
// layout's inner radius, reduced by the inner edge of any segment.
func (e *Epoch) InnerRadius() float64 {
	r := e.layout.radius()
	for _, seg := range e.segments {
		if s, ok := seg.(*MandalaSegment); ok {
			r = math.Min(r, s.InnerRadius())
		}
	}
	return r
}

// Scale scales the epoch by factor around about.
func (e *Epoch) Scale(factor float64, about Point) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return fmt.Errorf("epoch %d: scale %v: %w", e.id, factor, ErrDegenerateGeometry)
	}
	e.center = e.center.ScaleAround(about, factor)
	e.layout = e.layout.scaled(factor)
	for _, seg := range e.segments {
		if s, ok := seg.(*MandalaSegment); ok {
			s.scale(factor, about)
		}
	}
	return nil
}

// Translate moves the epoch by v.
func (e *Epoch) Translate(v Vec2) {
	e.center = e.center.Add(v)
	for _, seg := range e.segments {
		if s, ok := seg.(*MandalaSegment); ok {
			s.translate(v)
		}
	}
}

// Clone returns a deep copy. Handles minted by e do not address the copy.
func (e *Epoch) Clone() *Epoch {
	c := &Epoch{
		id:       e.id,
		center:   e.center,
		layout:   e.layout,
		outline:  e.outline,
		segments: make([]EpochSegment, len(e.segments)),
		key:      &epochKey{},
	}
	for i, seg := range e.segments {
		if s, ok := seg.(*MandalaSegment); ok {
			c.segments[i] = s.clone()
			continue
		}
		c.segments[i] = seg
	}
	return c
}
