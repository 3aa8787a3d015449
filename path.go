package mandala

import (
	"fmt"
)

// Path is an ordered sequence of segments. Consecutive segments are
// continuous, seg[i].To() == seg[i+1].From(), except that a [MoveTo]
// marker starts a new disconnected sub-path.
//
// The zero value is an empty path ready to use.
type Path struct {
	segments []PathSegment
	pen      Point // start of the first segment drawn on an empty path
}

// NewPath creates an empty path whose pen rests at the origin.
func NewPath() *Path {
	return &Path{segments: make([]PathSegment, 0, 8)}
}

// NewPathAt creates an empty path whose first drawn segment starts at pt,
// without emitting a MoveTo marker.
func NewPathAt(pt Point) *Path {
	p := NewPath()
	p.pen = pt
	return p
}

// PathOf builds a path from segments, checking continuity.
func PathOf(segments ...PathSegment) (*Path, error) {
	p := &Path{segments: make([]PathSegment, 0, len(segments))}
	for _, s := range segments {
		if err := p.Push(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Push appends seg. It returns ErrDiscontinuous when seg does not start
// where the path currently ends. A MoveTo may always be pushed.
func (p *Path) Push(seg PathSegment) error {
	if _, move := seg.(MoveTo); !move && len(p.segments) > 0 {
		end := p.segments[len(p.segments)-1].To()
		if !end.Approx(seg.From(), continuityEpsilon) {
			return fmt.Errorf("%w: segment %d starts at %v, path ends at %v",
				ErrDiscontinuous, len(p.segments), seg.From(), end)
		}
	}
	p.segments = append(p.segments, seg)
	return nil
}

// MustPush is like Push but panics on a continuity violation, which is
// always a bug in the caller's curve construction.
func (p *Path) MustPush(seg PathSegment) {
	if err := p.Push(seg); err != nil {
		panic(err)
	}
}

// current returns the end of the path, or the pen when empty.
func (p *Path) current() Point {
	if len(p.segments) == 0 {
		return p.pen
	}
	return p.segments[len(p.segments)-1].To()
}

// subpathStart returns the start of the current sub-path.
func (p *Path) subpathStart() Point {
	for i := len(p.segments) - 1; i >= 0; i-- {
		if m, ok := p.segments[i].(MoveTo); ok {
			return m.Point
		}
	}
	if len(p.segments) == 0 {
		return p.pen
	}
	return p.segments[0].From()
}

// MoveTo starts a new sub-path at pt.
func (p *Path) MoveTo(pt Point) *Path {
	p.segments = append(p.segments, MoveTo{Point: pt})
	return p
}

// LineTo draws a line from the current point to pt.
func (p *Path) LineTo(pt Point) *Path {
	p.segments = append(p.segments, Line{P0: p.current(), P1: pt})
	return p
}

// QuadTo draws a quadratic Bezier from the current point.
func (p *Path) QuadTo(ctrl, pt Point) *Path {
	p.segments = append(p.segments, QuadBez{P0: p.current(), P1: ctrl, P2: pt})
	return p
}

// CubicTo draws a cubic Bezier from the current point.
func (p *Path) CubicTo(ctrl1, ctrl2, pt Point) *Path {
	p.segments = append(p.segments, CubicBez{P0: p.current(), P1: ctrl1, P2: ctrl2, P3: pt})
	return p
}

// ArcTo draws an endpoint-form elliptical arc from the current point.
func (p *Path) ArcTo(radii Vec2, xRotation float64, large, sweep bool, pt Point) *Path {
	p.segments = append(p.segments, Arc{
		P0: p.current(), P1: pt, Radii: radii, XRotation: xRotation, LargeArc: large, Sweep: sweep,
	})
	return p
}

// SweepArcTo draws a circular arc around center, starting at the current
// point and sweeping by sweep radians.
func (p *Path) SweepArcTo(center Point, sweep float64) *Path {
	from := p.current()
	v := from.Sub(center)
	r := v.Length()
	p.segments = append(p.segments, SweepArc{
		Center: center,
		Radii:  V2(r, r),
		Start:  NewAngle(v.Atan2()),
		Sweep:  sweep,
	})
	return p
}

// Close draws a line back to the start of the current sub-path, unless
// the path is already there.
func (p *Path) Close() *Path {
	start := p.subpathStart()
	if len(p.segments) > 0 && !p.current().Approx(start, continuityEpsilon) {
		p.LineTo(start)
	}
	return p
}

// Segments returns the segments of the path. The slice must not be
// modified.
func (p *Path) Segments() []PathSegment {
	return p.segments
}

// Len returns the number of segments.
func (p *Path) Len() int {
	return len(p.segments)
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// Closed reports whether the last segment ends where the first begins,
// or the path is a single full-sweep arc.
func (p *Path) Closed() bool {
	if len(p.segments) == 0 {
		return false
	}
	if len(p.segments) == 1 {
		if s, ok := p.segments[0].(SweepArc); ok {
			return s.IsFull()
		}
		return false
	}
	first := p.segments[0]
	last := p.segments[len(p.segments)-1]
	return last.To().Approx(first.From(), continuityEpsilon)
}

// Length returns the total length of all segments.
func (p *Path) Length() float64 {
	var l float64
	for _, s := range p.segments {
		l += s.Length()
	}
	return l
}

// Clone creates a copy of the path. Segments are values, so the copy
// shares nothing with p.
func (p *Path) Clone() *Path {
	return &Path{segments: append([]PathSegment(nil), p.segments...), pen: p.pen}
}

// apply returns a new path with f applied to every segment.
func (p *Path) apply(f func(PathSegment) PathSegment) *Path {
	out := &Path{segments: make([]PathSegment, len(p.segments))}
	for i, s := range p.segments {
		out.segments[i] = f(s)
	}
	return out
}

// Translate returns the path moved by v.
func (p *Path) Translate(v Vec2) *Path {
	return p.apply(func(s PathSegment) PathSegment { return s.Translate(v) })
}

// Rotate returns the path rotated by angle radians around about.
func (p *Path) Rotate(angle float64, about Point) *Path {
	return p.apply(func(s PathSegment) PathSegment { return s.Rotate(angle, about) })
}

// Scale returns the path scaled by factor around about.
func (p *Path) Scale(factor float64, about Point) *Path {
	return p.apply(func(s PathSegment) PathSegment { return s.Scale(factor, about) })
}

// FlipAlongX returns the path mirrored across the horizontal line at y.
func (p *Path) FlipAlongX(y float64) *Path {
	return p.apply(func(s PathSegment) PathSegment { return s.FlipAlongX(y) })
}

// FlipAlongY returns the path mirrored across the vertical line at x.
func (p *Path) FlipAlongY(x float64) *Path {
	return p.apply(func(s PathSegment) PathSegment { return s.FlipAlongY(x) })
}

// MapPoints returns a path whose control points are mapped through f.
// Arcs have no point-wise form under a general mapping, so they are
// replaced by their cubic decomposition first.
func (p *Path) MapPoints(f func(Point) Point) *Path {
	out := &Path{segments: make([]PathSegment, 0, len(p.segments))}
	for _, seg := range p.segments {
		switch s := seg.(type) {
		case MoveTo:
			out.segments = append(out.segments, MoveTo{f(s.Point)})
		case Line:
			out.segments = append(out.segments, Line{f(s.P0), f(s.P1)})
		case QuadBez:
			out.segments = append(out.segments, QuadBez{f(s.P0), f(s.P1), f(s.P2)})
		case CubicBez:
			out.segments = append(out.segments, mapCubic(s, f))
		case Arc:
			for _, c := range s.Cubics() {
				out.segments = append(out.segments, mapCubic(c, f))
			}
		case SweepArc:
			for _, c := range s.Cubics() {
				out.segments = append(out.segments, mapCubic(c, f))
			}
		}
	}
	return out
}

func mapCubic(c CubicBez, f func(Point) Point) CubicBez {
	return CubicBez{f(c.P0), f(c.P1), f(c.P2), f(c.P3)}
}

// Flatten returns a path of lines approximating p, each segment within
// its own Tolerable. MoveTo markers are kept.
func (p *Path) Flatten() *Path {
	out := NewPath()
	for _, seg := range p.segments {
		if m, ok := seg.(MoveTo); ok {
			out.segments = append(out.segments, m)
			continue
		}
		for _, l := range seg.Flatten() {
			out.segments = append(out.segments, l)
		}
	}
	return out
}

// Intersections returns every crossing between segments of p and q.
func (p *Path) Intersections(q *Path) []Point {
	var out []Point
	for _, a := range p.segments {
		for _, b := range q.segments {
			for _, pt := range Intersect(a, b) {
				if !containsApprox(out, pt) {
					out = append(out, pt)
				}
			}
		}
	}
	return out
}

// KeyPoints returns the segment endpoints in traversal order, without
// consecutive duplicates within continuityEpsilon.
func (p *Path) KeyPoints() []Point {
	var out []Point
	add := func(pt Point) {
		if len(out) == 0 || !out[len(out)-1].Approx(pt, continuityEpsilon) {
			out = append(out, pt)
		}
	}
	for _, s := range p.segments {
		add(s.From())
		add(s.To())
	}
	return out
}

// BoundingBox returns the axis-aligned bounds of the path.
func (p *Path) BoundingBox() Rect {
	if len(p.segments) == 0 {
		return Rect{}
	}
	bbox := p.segments[0].BoundingBox()
	for _, s := range p.segments[1:] {
		bbox = bbox.Union(s.BoundingBox())
	}
	return bbox
}
