package mandala

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// stepEpsilon absorbs float noise when a step lands on the far edge.
const stepEpsilon = 1e-9

// Cell is one rectangle produced by a [GeneratorMode]. MirrorX asks for
// the content to be flipped horizontally within the cell, MirrorY
// vertically.
type Cell struct {
	Rect    Rect
	MirrorX bool
	MirrorY bool
}

// GeneratorMode partitions a rectangle into cells. The set of variants is
// closed: [XStep], [YStep], [XYStep], [GridStep], [XSymmetry] and
// [YSymmetry].
type GeneratorMode interface {
	isGeneratorMode()
	// Cells validates the mode and returns a lazy sequence of cells
	// covering bounds.
	Cells(bounds Rect) (iter.Seq[Cell], error)
}

func positiveStep(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%s step %v: %w", name, v, ErrDegenerateGeometry)
	}
	return nil
}

// XStep cuts full-height strips of width Step from left to right. The
// last strip is clipped to the bounds.
type XStep struct {
	Step float64
}

func (XStep) isGeneratorMode() {}

func (m XStep) Cells(bounds Rect) (iter.Seq[Cell], error) {
	if err := positiveStep("x", m.Step); err != nil {
		return nil, err
	}
	return func(yield func(Cell) bool) {
		for x := bounds.Min.X; x < bounds.Max.X-stepEpsilon; x += m.Step {
			w := math.Min(m.Step, bounds.Max.X-x)
			if !yield(Cell{Rect: RectXYWH(x, bounds.Min.Y, w, bounds.Height())}) {
				return
			}
		}
	}, nil
}

// YStep cuts full-width strips of height Step from top to bottom.
type YStep struct {
	Step float64
}

func (YStep) isGeneratorMode() {}

func (m YStep) Cells(bounds Rect) (iter.Seq[Cell], error) {
	if err := positiveStep("y", m.Step); err != nil {
		return nil, err
	}
	return func(yield func(Cell) bool) {
		for y := bounds.Min.Y; y < bounds.Max.Y-stepEpsilon; y += m.Step {
			h := math.Min(m.Step, bounds.Max.Y-y)
			if !yield(Cell{Rect: RectXYWH(bounds.Min.X, y, bounds.Width(), h)}) {
				return
			}
		}
	}, nil
}

// XYStep steps diagonally from the top-left corner and stops as soon as
// either axis is exhausted.
type XYStep struct {
	X, Y float64
}

func (XYStep) isGeneratorMode() {}

func (m XYStep) Cells(bounds Rect) (iter.Seq[Cell], error) {
	if err := positiveStep("x", m.X); err != nil {
		return nil, err
	}
	if err := positiveStep("y", m.Y); err != nil {
		return nil, err
	}
	return func(yield func(Cell) bool) {
		x, y := bounds.Min.X, bounds.Min.Y
		for x < bounds.Max.X-stepEpsilon && y < bounds.Max.Y-stepEpsilon {
			w := math.Min(m.X, bounds.Max.X-x)
			h := math.Min(m.Y, bounds.Max.Y-y)
			if !yield(Cell{Rect: RectXYWH(x, y, w, h)}) {
				return
			}
			x += m.X
			y += m.Y
		}
	}, nil
}

// GridStep tiles the bounds row by row, wrapping to the next row at the
// right edge.
type GridStep struct {
	X, Y float64
}

func (GridStep) isGeneratorMode() {}

func (m GridStep) Cells(bounds Rect) (iter.Seq[Cell], error) {
	if err := positiveStep("x", m.X); err != nil {
		return nil, err
	}
	if err := positiveStep("y", m.Y); err != nil {
		return nil, err
	}
	return func(yield func(Cell) bool) {
		for y := bounds.Min.Y; y < bounds.Max.Y-stepEpsilon; y += m.Y {
			h := math.Min(m.Y, bounds.Max.Y-y)
			for x := bounds.Min.X; x < bounds.Max.X-stepEpsilon; x += m.X {
				w := math.Min(m.X, bounds.Max.X-x)
				if !yield(Cell{Rect: RectXYWH(x, y, w, h)}) {
					return
				}
			}
		}
	}, nil
}

// XSymmetry runs Mode over the bounds, then again over the bounds
// mirrored across the vertical line x = Axis. Cells of the second pass
// are marked MirrorX.
type XSymmetry struct {
	Mode GeneratorMode
	Axis float64
}

func (XSymmetry) isGeneratorMode() {}

func (m XSymmetry) Cells(bounds Rect) (iter.Seq[Cell], error) {
	mirrored := NewRect(mirrorY(bounds.Min, m.Axis), mirrorY(bounds.Max, m.Axis))
	return symmetric(m.Mode, bounds, mirrored, func(c *Cell) { c.MirrorX = !c.MirrorX })
}

// YSymmetry runs Mode over the bounds, then again over the bounds
// mirrored across the horizontal line y = Axis. Cells of the second pass
// are marked MirrorY.
type YSymmetry struct {
	Mode GeneratorMode
	Axis float64
}

func (YSymmetry) isGeneratorMode() {}

func (m YSymmetry) Cells(bounds Rect) (iter.Seq[Cell], error) {
	mirrored := NewRect(mirrorX(bounds.Min, m.Axis), mirrorX(bounds.Max, m.Axis))
	return symmetric(m.Mode, bounds, mirrored, func(c *Cell) { c.MirrorY = !c.MirrorY })
}

func symmetric(inner GeneratorMode, bounds, mirrored Rect, mark func(*Cell)) (iter.Seq[Cell], error) {
	if inner == nil {
		return nil, fmt.Errorf("symmetry inner mode: %w", ErrMissingField)
	}
	first, err := inner.Cells(bounds)
	if err != nil {
		return nil, err
	}
	second, err := inner.Cells(mirrored)
	if err != nil {
		return nil, err
	}
	return func(yield func(Cell) bool) {
		for c := range first {
			if !yield(c) {
				return
			}
		}
		for c := range second {
			mark(&c)
			if !yield(c) {
				return
			}
		}
	}, nil
}

// FillValue resolves a per-cell magnitude. The set of variants is closed:
// [Static], [Incremental], [Varying] and [RandomValue].
type FillValue interface {
	isFillValue()
	// ValueAt returns the value for the cell at index i.
	ValueAt(i int, rng *Rand) (float64, error)
}

// Static is the same value for every cell.
type Static struct {
	Value float64
}

func (Static) isFillValue() {}

func (v Static) ValueAt(int, *Rand) (float64, error) { return v.Value, nil }

// Incremental is Init + i*Increment.
type Incremental struct {
	Init, Increment float64
}

func (Incremental) isFillValue() {}

func (v Incremental) ValueAt(i int, _ *Rand) (float64, error) {
	return v.Init + float64(i)*v.Increment, nil
}

// Varying cycles through Values.
type Varying struct {
	Values []float64
}

func (Varying) isFillValue() {}

func (v Varying) ValueAt(i int, _ *Rand) (float64, error) {
	n := len(v.Values)
	if n == 0 {
		return 0, fmt.Errorf("varying value: %w", ErrEmptyPool)
	}
	return v.Values[((i%n)+n)%n], nil
}

// RandomValue picks uniformly from Pool with the shared random source.
type RandomValue struct {
	Pool []float64
}

func (RandomValue) isFillValue() {}

func (v RandomValue) ValueAt(_ int, rng *Rand) (float64, error) {
	if rng == nil {
		return 0, fmt.Errorf("random value: rng: %w", ErrMissingField)
	}
	val, err := Choose(rng, v.Pool)
	if err != nil {
		return 0, fmt.Errorf("random value: %w", err)
	}
	return val, nil
}

// Transform changes a tile around its cell center. The set of variants is
// closed: [ScaleBy], [RotateBy] and [TranslateBy]. Whatever order they
// are listed in, scales apply first, then rotations, then translations.
type Transform interface {
	isTransform()
	stage() int
	apply(p *Path, i int, about Point, rng *Rand) (*Path, error)
}

// ScaleBy scales the tile by Factor.
type ScaleBy struct {
	Factor FillValue
}

func (ScaleBy) isTransform() {}
func (ScaleBy) stage() int   { return 0 }

func (t ScaleBy) apply(p *Path, i int, about Point, rng *Rand) (*Path, error) {
	f, err := resolveValue(t.Factor, "scale factor", i, rng)
	if err != nil {
		return nil, err
	}
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("cell %d: scale factor %v: %w", i, f, ErrDegenerateGeometry)
	}
	return p.Scale(f, about), nil
}

// RotateBy rotates the tile by Angle radians.
type RotateBy struct {
	Angle FillValue
}

func (RotateBy) isTransform() {}
func (RotateBy) stage() int   { return 1 }

func (t RotateBy) apply(p *Path, i int, about Point, rng *Rand) (*Path, error) {
	a, err := resolveValue(t.Angle, "rotation", i, rng)
	if err != nil {
		return nil, err
	}
	return p.Rotate(a, about), nil
}

// TranslateBy moves the tile. A nil component means no movement along
// that axis.
type TranslateBy struct {
	X, Y FillValue
}

func (TranslateBy) isTransform() {}
func (TranslateBy) stage() int   { return 2 }

func (t TranslateBy) apply(p *Path, i int, _ Point, rng *Rand) (*Path, error) {
	var dx, dy float64
	var err error
	if t.X != nil {
		if dx, err = t.X.ValueAt(i, rng); err != nil {
			return nil, fmt.Errorf("cell %d: translate x: %w", i, err)
		}
	}
	if t.Y != nil {
		if dy, err = t.Y.ValueAt(i, rng); err != nil {
			return nil, fmt.Errorf("cell %d: translate y: %w", i, err)
		}
	}
	return p.Translate(V2(dx, dy)), nil
}

func resolveValue(v FillValue, name string, i int, rng *Rand) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("cell %d: %s: %w", i, name, ErrMissingField)
	}
	f, err := v.ValueAt(i, rng)
	if err != nil {
		return 0, fmt.Errorf("cell %d: %s: %w", i, name, err)
	}
	return f, nil
}

// ShapeFunc returns a path inside the box [0, size.Width] x
// [0, size.Height].
type ShapeFunc func(size Size) (*Path, error)

// Generator tiles Bounds with copies of Shape, one per cell of Mode.
type Generator struct {
	Bounds     Rect
	Mode       GeneratorMode
	Transforms []Transform
	Shape      ShapeFunc
}

// Generate returns one path per cell. Each shape is drawn in its cell's
// own box, mirrored when the cell asks for it, transformed about the box
// center and finally moved to the cell position.
func (g Generator) Generate(rng *Rand) ([]*Path, error) {
	if g.Mode == nil {
		return nil, fmt.Errorf("generator mode: %w", ErrMissingField)
	}
	if g.Shape == nil {
		return nil, fmt.Errorf("generator shape: %w", ErrMissingField)
	}
	for i, t := range g.Transforms {
		if t == nil {
			return nil, fmt.Errorf("generator transform %d: %w", i, ErrMissingField)
		}
	}
	cells, err := g.Mode.Cells(g.Bounds)
	if err != nil {
		return nil, err
	}
	transforms := slices.Clone(g.Transforms)
	slices.SortStableFunc(transforms, func(a, b Transform) int { return a.stage() - b.stage() })

	var out []*Path
	i := 0
	for cell := range cells {
		size := cell.Rect.Size()
		p, err := g.Shape(size)
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		if p == nil {
			return nil, fmt.Errorf("cell %d: shape: %w", i, ErrMissingField)
		}
		mid := Pt(size.Width/2, size.Height/2)
		if cell.MirrorX {
			p = p.FlipAlongY(mid.X)
		}
		if cell.MirrorY {
			p = p.FlipAlongX(mid.Y)
		}
		for _, t := range transforms {
			if p, err = t.apply(p, i, mid, rng); err != nil {
				return nil, err
			}
		}
		out = append(out, p.Translate(cell.Rect.Min.Vec()))
		i++
	}
	Logger().Debug("generated tiles", "cells", i, "transforms", len(transforms))
	return out, nil
}

// Drawing generates the tiles as segment contents.
func (g Generator) Drawing(rng *Rand) (PathsDrawing, error) {
	paths, err := g.Generate(rng)
	if err != nil {
		return nil, err
	}
	return PathsDrawing(paths), nil
}
