// Package mandala composes radial, self-similar drawings from primitive
// curve geometry.
//
// # Overview
//
// A drawing is built bottom-up:
//   - Geometry: [Point], [Vec2], [Angle], [Rect] and the [PathSegment]
//     variants ([MoveTo], [Line], [Arc], [SweepArc], [QuadBez], [CubicBez]).
//   - [Path]: an ordered, continuity-checked sequence of segments.
//   - [MandalaSegment]: one radial patch with its own local coordinate
//     system, holding paths (or a nested [Mandala]) in local coordinates.
//   - [Epoch]: a ring of segments placed around a shared center under a
//     full-turn angular budget, with cheap replicas of existing segments.
//   - [Mandala]: an ordered list of epochs that can grow itself with
//     [Mandala.GenerateEpoch].
//   - [Generator]: tiles a rectangle with transformed copies of a shape,
//     typically to fill a segment's contents.
//
// # Quick Start
//
//	m, err := mandala.NewSeeded(mandala.Size{Width: 800, Height: 800}, 42)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for range 12 {
//	    if err := m.GenerateEpoch(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//	for _, p := range m.Render() {
//	    fmt.Println(p.SVGPathData())
//	}
//
// # Coordinate System
//
// Global coordinates follow the usual computer graphics convention:
// origin at top-left, X grows right, Y grows down, angles in radians with
// 0 pointing right. A segment patch uses (c, r) local coordinates where c
// runs across the sweep from -normalized/2 to normalized/2 and r runs from
// the inner edge (0) to the outer edge (normalized).
//
// # Determinism
//
// All randomness flows through a single seeded [Rand] owned by the
// [Mandala]. Generation with the same seed and options replays bit for bit.
// Nothing in this package is safe for concurrent use.
package mandala

// Version is the current version of the library.
const Version = "0.1.0"
