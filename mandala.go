package mandala

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// EpochFunc builds the next epoch of a mandala from the last one, drawing
// any randomness from rng.
type EpochFunc func(last *Epoch, rng *Rand) (*Epoch, error)

// Mandala is an ordered list of epochs inside a bounding box. The first
// epoch is always an outlined circle touching the shorter side of the
// bounds, with no segments.
//
// Every key point of every epoch drawn so far is kept, in insertion
// order, as a candidate center for later epochs.
type Mandala struct {
	bounds Rect
	epochs []*Epoch
	rng    *Rand
	opts   options

	displacements []Point
	known         map[Point]struct{}
	used          map[Point]struct{}

	cache []*Path
}

// New creates a mandala of the given size with a random seed.
func New(size Size, opts ...Option) (*Mandala, error) {
	return NewSeeded(size, rand.Uint64(), opts...)
}

// NewSeeded creates a mandala of the given size whose generation replays
// exactly for the same seed and options.
func NewSeeded(size Size, seed uint64, opts ...Option) (*Mandala, error) {
	if !size.valid() {
		return nil, fmt.Errorf("mandala size %v: %w", size, ErrDegenerateGeometry)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}

	m := &Mandala{
		bounds: size.Rect(),
		rng:    NewRand(seed),
		opts:   o,
		known:  make(map[Point]struct{}),
		used:   make(map[Point]struct{}),
	}
	err := m.DrawEpoch(func(_ *Epoch, _ *Rand) (*Epoch, error) {
		return NewEpoch(EpochConfig{
			Center:  m.bounds.Center(),
			Layout:  CircleLayout{Radius: size.Min() / 2},
			Outline: true,
		})
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Bounds returns the bounding box.
func (m *Mandala) Bounds() Rect { return m.bounds }

// Size returns the size of the bounding box.
func (m *Mandala) Size() Size { return m.bounds.Size() }

// Epochs returns the epochs in drawing order. The slice must not be
// modified.
func (m *Mandala) Epochs() []*Epoch { return m.epochs }

// Rand returns the random source owned by the mandala.
func (m *Mandala) Rand() *Rand { return m.rng }

// last returns the most recent epoch, or nil before the first one.
func (m *Mandala) last() *Epoch {
	if len(m.epochs) == 0 {
		return nil
	}
	return m.epochs[len(m.epochs)-1]
}

// DrawEpoch appends the epoch built by f. The epoch's ID becomes its
// index, its key points become candidate centers and its center is
// marked as used.
func (m *Mandala) DrawEpoch(f EpochFunc) error {
	if f == nil {
		return fmt.Errorf("epoch %d: epoch func: %w", len(m.epochs), ErrMissingField)
	}
	e, err := f(m.last(), m.rng)
	if err != nil {
		return fmt.Errorf("epoch %d: %w", len(m.epochs), err)
	}
	if e == nil {
		return fmt.Errorf("epoch %d: %w", len(m.epochs), ErrMissingField)
	}
	e.id = len(m.epochs)
	m.epochs = append(m.epochs, e)

	for _, p := range e.Render() {
		for _, pt := range p.KeyPoints() {
			m.addDisplacement(pt)
		}
	}
	m.used[e.center] = struct{}{}
	m.cache = nil
	return nil
}

func (m *Mandala) addDisplacement(pt Point) {
	if _, ok := m.known[pt]; ok {
		return
	}
	m.known[pt] = struct{}{}
	m.displacements = append(m.displacements, pt)
}

// ProposeEpochDisplacements returns the candidate centers not yet used
// by an epoch, in the order they were found.
func (m *Mandala) ProposeEpochDisplacements() []Point {
	out := make([]Point, 0, len(m.displacements))
	for _, pt := range m.displacements {
		if _, ok := m.used[pt]; !ok {
			out = append(out, pt)
		}
	}
	return out
}

// GenerateEpoch grows the mandala by one epoch holding one random-walk
// segment.
//
// While the disc left inside the last epoch covers more than half of the
// bounds, the new epoch is concentric and fills that disc. After that
// its center is an unused candidate (or a uniform point when none is
// left) and its radius is drawn from the room between the center and
// the last epoch's inner edge, or from up to half the shorter side when
// the center lies outside that edge.
func (m *Mandala) GenerateEpoch() error {
	return m.DrawEpoch(m.nextEpoch)
}

func (m *Mandala) nextEpoch(last *Epoch, rng *Rand) (*Epoch, error) {
	inner := last.InnerRadius()
	spaceNext := Size{Width: 2 * inner, Height: 2 * inner}

	var center Point
	var radius float64
	if spaceNext.Area() > m.bounds.Area()/2 {
		center, radius = last.Center(), inner
	} else {
		center = m.pickCenter(rng)
		if room := inner - center.Distance(last.Center()); room > 0 {
			radius = room/2 + room/2*(1-rng.Float64())
		} else {
			radius = m.bounds.Size().Min() / 2 * (1 - rng.Float64())
		}
	}

	count, err := Choose(rng, m.opts.primes)
	if err != nil {
		return nil, fmt.Errorf("segment count: %w", err)
	}
	divisor, err := Choose(rng, m.opts.primes)
	if err != nil {
		return nil, fmt.Errorf("breadth divisor: %w", err)
	}

	e, err := NewEpoch(EpochConfig{Center: center, Layout: CircleLayout{Radius: radius}})
	if err != nil {
		return nil, err
	}
	walk := WalkConfig{
		Vertices:   m.opts.vertexDetail,
		Symmetry:   m.opts.symmetry,
		Normalized: m.opts.normalized,
	}
	_, err = e.DrawSegment(func(start Angle, maxSweep float64, c Point) (*MandalaSegment, error) {
		path, err := RandomWalk(rng, walk)
		if err != nil {
			return nil, err
		}
		return NewMandalaSegment(SegmentConfig{
			Breadth:    radius / float64(divisor),
			RBase:      radius,
			AngleBase:  start,
			Sweep:      math.Min(TwoPi/float64(count), maxSweep),
			Center:     c,
			Normalized: m.opts.normalized,
			Drawing:    []SegmentDrawing{PathsDrawing{path}},
		})
	})
	if err != nil {
		return nil, err
	}

	Logger().Debug("generated epoch",
		"epoch", len(m.epochs),
		"center", center,
		"radius", radius,
		"count", count,
		"divisor", divisor)
	return e, nil
}

// pickCenter returns a random unused candidate center, or a uniform point
// in the bounds when none is left.
func (m *Mandala) pickCenter(rng *Rand) Point {
	if pt, err := Choose(rng, m.ProposeEpochDisplacements()); err == nil {
		return pt
	}
	return Pt(
		rng.Range(m.bounds.Min.X, m.bounds.Max.X),
		rng.Range(m.bounds.Min.Y, m.bounds.Max.Y),
	)
}

// Render returns the paths of every epoch in order. The result is cached
// until the next mutation; the returned paths are shared with the cache
// and must not be modified.
func (m *Mandala) Render() []*Path {
	if m.cache == nil {
		m.rebuild()
	}
	return m.cache
}

func (m *Mandala) rebuild() {
	cache := make([]*Path, 0, len(m.epochs))
	for _, e := range m.epochs {
		cache = append(cache, e.Render()...)
	}
	m.cache = cache
}

// Resize scales the mandala uniformly about its center to fit size, then
// recenters it in the resized bounds. The top-left corner stays put.
func (m *Mandala) Resize(size Size) error {
	if !size.valid() {
		return fmt.Errorf("resize to %v: %w", size, ErrDegenerateGeometry)
	}
	oldCenter := m.bounds.Center()
	factor := size.Min() / m.bounds.Size().Min()
	bounds := Rect{Min: m.bounds.Min, Max: m.bounds.Min.Add(V2(size.Width, size.Height))}
	shift := bounds.Center().Sub(oldCenter)

	for _, e := range m.epochs {
		if err := e.Scale(factor, oldCenter); err != nil {
			return err
		}
		e.Translate(shift)
	}
	m.bounds = bounds
	m.remapDisplacements(func(pt Point) Point {
		return pt.ScaleAround(oldCenter, factor).Add(shift)
	})
	m.rebuild()
	return nil
}

// Translate moves the mandala and its bounds by v.
func (m *Mandala) Translate(v Vec2) {
	for _, e := range m.epochs {
		e.Translate(v)
	}
	m.bounds = m.bounds.Translate(v)
	m.remapDisplacements(func(pt Point) Point { return pt.Add(v) })
	m.rebuild()
}

func (m *Mandala) remapDisplacements(f func(Point) Point) {
	used := make(map[Point]struct{}, len(m.used))
	for pt := range m.used {
		used[f(pt)] = struct{}{}
	}
	pts := m.displacements
	m.displacements = make([]Point, 0, len(pts))
	m.known = make(map[Point]struct{}, len(pts))
	m.used = used
	for _, pt := range pts {
		m.addDisplacement(f(pt))
	}
}

// Clone returns a deep copy, random state included, so the copy and the
// original generate the same future epochs.
func (m *Mandala) Clone() *Mandala {
	c := &Mandala{
		bounds:        m.bounds,
		epochs:        make([]*Epoch, len(m.epochs)),
		rng:           m.rng.Clone(),
		opts:          m.opts,
		displacements: append([]Point(nil), m.displacements...),
		known:         make(map[Point]struct{}, len(m.known)),
		used:          make(map[Point]struct{}, len(m.used)),
	}
	c.opts.primes = append([]int(nil), m.opts.primes...)
	for i, e := range m.epochs {
		c.epochs[i] = e.Clone()
	}
	for pt := range m.known {
		c.known[pt] = struct{}{}
	}
	for pt := range m.used {
		c.used[pt] = struct{}{}
	}
	return c
}
