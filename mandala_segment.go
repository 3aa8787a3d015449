package mandala

import (
	"fmt"
	"math"
)

// DefaultNormalized is the local coordinate extent of a segment patch
// when SegmentConfig.Normalized is left zero.
const DefaultNormalized = 100.0

// SegmentDrawing is the content of a [MandalaSegment]. The set of
// variants is closed: [PathsDrawing] and [MandalaDrawing].
type SegmentDrawing interface {
	isSegmentDrawing()
	validate() error
	render(s *MandalaSegment) []*Path
	clone() SegmentDrawing
}

// PathsDrawing is a list of paths in the local (c, r) coordinates of the
// segment that holds it.
type PathsDrawing []*Path

func (PathsDrawing) isSegmentDrawing() {}

func (d PathsDrawing) validate() error {
	for i, p := range d {
		if p == nil {
			return fmt.Errorf("path %d: %w", i, ErrMissingField)
		}
	}
	return nil
}

func (d PathsDrawing) render(s *MandalaSegment) []*Path {
	out := make([]*Path, 0, len(d))
	for _, p := range d {
		out = append(out, p.MapPoints(s.toGlobalPoint))
	}
	return out
}

func (d PathsDrawing) clone() SegmentDrawing {
	out := make(PathsDrawing, len(d))
	for i, p := range d {
		out[i] = p.Clone()
	}
	return out
}

// MandalaDrawing nests a whole mandala inside a segment. The nested
// mandala is rendered in its own space, fitted uniformly into Placement
// (a box in local segment coordinates) and then mapped to global space.
type MandalaDrawing struct {
	Mandala   *Mandala
	Placement Rect
}

func (MandalaDrawing) isSegmentDrawing() {}

// validate requires a mandala and a placement box with finite, non-zero
// area.
func (d MandalaDrawing) validate() error {
	if d.Mandala == nil {
		return fmt.Errorf("nested mandala: %w", ErrMissingField)
	}
	w, h := d.Placement.Width(), d.Placement.Height()
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return fmt.Errorf("placement %v: %w", d.Placement, ErrDegenerateGeometry)
	}
	return nil
}

func (d MandalaDrawing) render(s *MandalaSegment) []*Path {
	fit := fitInto(d.Mandala.Bounds(), d.Placement)
	paths := d.Mandala.Render()
	out := make([]*Path, 0, len(paths))
	for _, p := range paths {
		out = append(out, p.MapPoints(func(pt Point) Point {
			return s.toGlobalPoint(fit.TransformPoint(pt))
		}))
	}
	return out
}

func (d MandalaDrawing) clone() SegmentDrawing {
	if d.Mandala == nil {
		return d
	}
	return MandalaDrawing{Mandala: d.Mandala.Clone(), Placement: d.Placement}
}

// SegmentConfig describes a [MandalaSegment]. Every field except
// Normalized and Drawing is required to be meaningful; Normalized
// defaults to [DefaultNormalized].
type SegmentConfig struct {
	ID         int
	Breadth    float64 // radial thickness of the patch
	RBase      float64 // outer radius of the patch
	AngleBase  Angle
	Sweep      float64 // angular width in radians
	Center     Point
	Normalized float64
	Drawing    []SegmentDrawing
}

// MandalaSegment is one radial patch with its own local coordinate
// system. c runs across the sweep, 0 at AngleBase and ±Normalized/2 at
// the edges; r runs from 0 at the inner edge (RBase-Breadth) to
// Normalized at the outer edge (RBase).
//
// The geometry is fixed at construction. Only the drawing contents may
// change, through [MandalaSegment.AddDrawing].
type MandalaSegment struct {
	id         int
	breadth    float64
	rBase      float64
	angleBase  Angle
	sweep      float64
	center     Point
	normalized float64
	drawing    []SegmentDrawing
}

// NewMandalaSegment validates cfg and builds a segment.
func NewMandalaSegment(cfg SegmentConfig) (*MandalaSegment, error) {
	if cfg.Normalized == 0 {
		cfg.Normalized = DefaultNormalized
	}
	switch {
	case !(cfg.Breadth > 0) || math.IsInf(cfg.Breadth, 0):
		return nil, fmt.Errorf("segment %d: breadth %v: %w", cfg.ID, cfg.Breadth, ErrDegenerateGeometry)
	case !(cfg.RBase >= cfg.Breadth) || math.IsInf(cfg.RBase, 0):
		return nil, fmt.Errorf("segment %d: r_base %v below breadth %v: %w", cfg.ID, cfg.RBase, cfg.Breadth, ErrDegenerateGeometry)
	case !(cfg.Sweep > 0) || math.IsInf(cfg.Sweep, 0):
		return nil, fmt.Errorf("segment %d: sweep %v: %w", cfg.ID, cfg.Sweep, ErrDegenerateGeometry)
	case !(cfg.Normalized > 0) || math.IsInf(cfg.Normalized, 0):
		return nil, fmt.Errorf("segment %d: normalized %v: %w", cfg.ID, cfg.Normalized, ErrDegenerateGeometry)
	}
	for i, d := range cfg.Drawing {
		if err := validateDrawing(d); err != nil {
			return nil, fmt.Errorf("segment %d: drawing %d: %w", cfg.ID, i, err)
		}
	}
	return &MandalaSegment{
		id:         cfg.ID,
		breadth:    cfg.Breadth,
		rBase:      cfg.RBase,
		angleBase:  cfg.AngleBase,
		sweep:      cfg.Sweep,
		center:     cfg.Center,
		normalized: cfg.Normalized,
		drawing:    append([]SegmentDrawing(nil), cfg.Drawing...),
	}, nil
}

func (s *MandalaSegment) isEpochSegment() {}

// ID returns the segment identifier.
func (s *MandalaSegment) ID() int { return s.id }

// Breadth returns the radial thickness of the patch.
func (s *MandalaSegment) Breadth() float64 { return s.breadth }

// RBase returns the outer radius of the patch.
func (s *MandalaSegment) RBase() float64 { return s.rBase }

// AngleBase returns the angle at which c is zero.
func (s *MandalaSegment) AngleBase() Angle { return s.angleBase }

// Sweep returns the angular width of the patch in radians.
func (s *MandalaSegment) Sweep() float64 { return s.sweep }

// Center returns the center the patch is placed around.
func (s *MandalaSegment) Center() Point { return s.center }

// Normalized returns the local coordinate extent.
func (s *MandalaSegment) Normalized() float64 { return s.normalized }

// InnerRadius returns the radius of the inner edge, RBase - Breadth.
func (s *MandalaSegment) InnerRadius() float64 { return s.rBase - s.breadth }

// Drawing returns the drawing contents. The slice must not be modified.
func (s *MandalaSegment) Drawing() []SegmentDrawing { return s.drawing }

// AddDrawing appends content to the segment.
func (s *MandalaSegment) AddDrawing(d SegmentDrawing) error {
	if err := validateDrawing(d); err != nil {
		return fmt.Errorf("segment %d: drawing: %w", s.id, err)
	}
	s.drawing = append(s.drawing, d)
	return nil
}

func validateDrawing(d SegmentDrawing) error {
	if d == nil {
		return ErrMissingField
	}
	return d.validate()
}

// ToGlobal maps local patch coordinates to a global point.
func (s *MandalaSegment) ToGlobal(c, r float64) Point {
	radius := r/s.normalized*s.breadth + s.InnerRadius()
	theta := s.angleBase.Radians() + c/s.normalized*s.sweep
	sin, cos := math.Sincos(theta)
	return Pt(s.center.X+radius*cos, s.center.Y+radius*sin)
}

func (s *MandalaSegment) toGlobalPoint(p Point) Point {
	return s.ToGlobal(p.X, p.Y)
}

// ToLocal maps a global point to local patch coordinates. The angular
// offset from AngleBase is taken in [-π, π), so points on the far side
// of the center from the patch do not round trip.
func (s *MandalaSegment) ToLocal(p Point) (c, r float64) {
	v := p.Sub(s.center)
	delta := NewAngle(v.Atan2()-s.angleBase.Radians()+math.Pi).Radians() - math.Pi
	c = delta / s.sweep * s.normalized
	r = (v.Length() - s.InnerRadius()) / s.breadth * s.normalized
	return c, r
}

// Render returns the drawing contents in global coordinates. Arcs are
// replaced by cubics, since the radial mapping bends straight axes.
func (s *MandalaSegment) Render() []*Path {
	var out []*Path
	for _, d := range s.drawing {
		out = append(out, d.render(s)...)
	}
	return out
}

// scale scales the placement of s by factor around about. Local contents
// are unaffected.
func (s *MandalaSegment) scale(factor float64, about Point) {
	s.center = s.center.ScaleAround(about, factor)
	s.breadth *= factor
	s.rBase *= factor
}

func (s *MandalaSegment) translate(v Vec2) {
	s.center = s.center.Add(v)
}

// clone returns a deep copy, including nested drawings.
func (s *MandalaSegment) clone() *MandalaSegment {
	c := *s
	c.drawing = make([]SegmentDrawing, len(s.drawing))
	for i, d := range s.drawing {
		c.drawing[i] = d.clone()
	}
	return &c
}
