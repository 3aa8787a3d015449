package mandala

import (
	"math"
	"strconv"
	"strings"
)

// SVGPathData returns the path as SVG path data:
//
//	M x,y (L|Q|C|A ...)... [Z]
//
// Tokens are separated by single spaces and numbers use the shortest
// decimal form that round-trips. A move-to marker or a gap between
// segments emits M. A full-sweep arc cannot be written as one SVG A
// command (its endpoints coincide), so it is written as its cubic
// decomposition instead. Z is appended when the path is closed.
func (p *Path) SVGPathData() string {
	w := svgWriter{}
	started := false
	var cur Point
	for _, seg := range p.segments {
		if m, ok := seg.(MoveTo); ok {
			w.cmd("M", m.Point)
			cur, started = m.Point, true
			continue
		}
		if !started || !cur.Approx(seg.From(), continuityEpsilon) {
			w.cmd("M", seg.From())
			started = true
		}
		switch s := seg.(type) {
		case Line:
			w.cmd("L", s.P1)
		case QuadBez:
			w.cmd("Q", s.P1, s.P2)
		case CubicBez:
			w.cmd("C", s.P1, s.P2, s.P3)
		case Arc:
			w.arc(s)
		case SweepArc:
			if s.Sweep == 0 {
				break
			}
			if a, ok := s.EndpointArc(); ok {
				w.arc(a)
				break
			}
			for _, c := range s.Cubics() {
				w.cmd("C", c.P1, c.P2, c.P3)
			}
		}
		cur = seg.To()
	}
	if p.Closed() {
		w.token("Z")
	}
	return w.sb.String()
}

type svgWriter struct {
	sb strings.Builder
}

func (w *svgWriter) token(t string) {
	if w.sb.Len() > 0 {
		w.sb.WriteByte(' ')
	}
	w.sb.WriteString(t)
}

func (w *svgWriter) pair(a, b string) {
	w.token(a)
	w.sb.WriteByte(',')
	w.sb.WriteString(b)
}

func (w *svgWriter) cmd(name string, pts ...Point) {
	w.token(name)
	for _, pt := range pts {
		w.pair(formatNumber(pt.X), formatNumber(pt.Y))
	}
}

func (w *svgWriter) arc(a Arc) {
	w.token("A")
	w.pair(formatNumber(math.Abs(a.Radii.X)), formatNumber(math.Abs(a.Radii.Y)))
	w.token(formatNumber(a.XRotation * 180 / math.Pi))
	w.pair(svgFlag(a.LargeArc), svgFlag(a.Sweep))
	w.pair(formatNumber(a.P1.X), formatNumber(a.P1.Y))
}

func formatNumber(v float64) string {
	if v == 0 {
		// Avoid "-0".
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func svgFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
