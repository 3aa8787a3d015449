// Package svg writes rendered mandala paths as standalone SVG documents.
package svg

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/gogpu/mandala"
)

// ErrEmptyViewBox is returned when the view box has no area.
var ErrEmptyViewBox = errors.New("svg: empty view box")

// Style controls how paths are painted. Colors are any SVG paint value.
type Style struct {
	Stroke      string
	StrokeWidth float64
	Fill        string
	Background  string // empty for a transparent background
}

// DefaultStyle returns black hairline-ish strokes on white.
func DefaultStyle() Style {
	return Style{
		Stroke:      "#000",
		StrokeWidth: 1,
		Fill:        "none",
		Background:  "#fff",
	}
}

// Encode writes an SVG document showing viewBox with one <path> per
// non-empty path.
func Encode(w io.Writer, viewBox mandala.Rect, paths []*mandala.Path, style Style) error {
	if !(viewBox.Width() > 0) || !(viewBox.Height() > 0) {
		return fmt.Errorf("%w: %v", ErrEmptyViewBox, viewBox)
	}
	d := &document{w: w}
	d.printf(`<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	d.printf(`<svg xmlns="http://www.w3.org/2000/svg" version="1.1" viewBox="%s %s %s %s" width="%s" height="%s">`+"\n",
		num(viewBox.Min.X), num(viewBox.Min.Y), num(viewBox.Width()), num(viewBox.Height()),
		num(viewBox.Width()), num(viewBox.Height()))
	if style.Background != "" {
		d.printf(`<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(viewBox.Min.X), num(viewBox.Min.Y), num(viewBox.Width()), num(viewBox.Height()),
			html.EscapeString(style.Background))
	}
	d.printf(`<g fill="%s" stroke="%s" stroke-width="%s" stroke-linecap="round" stroke-linejoin="round">`+"\n",
		html.EscapeString(paint(style.Fill)), html.EscapeString(paint(style.Stroke)), num(style.StrokeWidth))
	for _, p := range paths {
		if p == nil || p.IsEmpty() {
			continue
		}
		d.printf(`<path d="%s"/>`+"\n", p.SVGPathData())
	}
	d.printf("</g>\n</svg>\n")
	return d.err
}

// document remembers the first write error so Encode can check once.
type document struct {
	w   io.Writer
	err error
}

func (d *document) printf(format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func paint(v string) string {
	if v == "" {
		return "none"
	}
	return v
}

func num(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
