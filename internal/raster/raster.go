// Package raster strokes rendered mandala paths into bitmaps and encodes
// them as PNG, BMP or TIFF.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/vector"

	"github.com/gogpu/mandala"
)

var (
	// ErrUnknownFormat is returned for an image format other than png,
	// bmp or tiff.
	ErrUnknownFormat = errors.New("raster: unknown image format")

	// ErrInvalidSize is returned for a non-positive image size or an
	// empty view box.
	ErrInvalidSize = errors.New("raster: invalid size")
)

// Options controls rasterization.
type Options struct {
	Width, Height int
	// StrokeWidth is in output pixels.
	StrokeWidth float64
	Foreground  color.Color
	Background  color.Color // nil for transparent
}

// DefaultOptions returns a square 800 pixel image with black strokes on
// white.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      800,
		StrokeWidth: 1.5,
		Foreground:  color.Black,
		Background:  color.White,
	}
}

// Rasterize strokes paths, fitted uniformly and centered from viewBox
// into the image.
func Rasterize(paths []*mandala.Path, viewBox mandala.Rect, opts Options) (*image.RGBA, error) {
	if opts.Width <= 0 || opts.Height <= 0 || !(viewBox.Width() > 0) || !(viewBox.Height() > 0) {
		return nil, fmt.Errorf("%w: %dx%d from %v", ErrInvalidSize, opts.Width, opts.Height, viewBox)
	}
	if opts.Foreground == nil {
		opts.Foreground = color.Black
	}
	if !(opts.StrokeWidth > 0) {
		opts.StrokeWidth = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}

	toPixel := fit(viewBox, float64(opts.Width), float64(opts.Height))
	ras := vector.NewRasterizer(opts.Width, opts.Height)
	ras.DrawOp = draw.Over
	half := opts.StrokeWidth / 2
	lines := 0
	for _, p := range paths {
		if p == nil {
			continue
		}
		for _, seg := range p.Flatten().Segments() {
			l, ok := seg.(mandala.Line)
			if !ok {
				continue
			}
			strokeLine(ras, toPixel(l.P0), toPixel(l.P1), half)
			lines++
		}
	}
	ras.Draw(img, img.Bounds(), image.NewUniform(opts.Foreground), image.Point{})
	mandala.Logger().Debug("rasterized paths", "paths", len(paths), "lines", lines,
		"width", opts.Width, "height", opts.Height)
	return img, nil
}

// fit maps viewBox uniformly into a w x h image, centered.
func fit(viewBox mandala.Rect, w, h float64) func(mandala.Point) mandala.Point {
	s := math.Min(w/viewBox.Width(), h/viewBox.Height())
	c := viewBox.Center()
	return func(p mandala.Point) mandala.Point {
		return mandala.Pt((p.X-c.X)*s+w/2, (p.Y-c.Y)*s+h/2)
	}
}

// strokeLine adds a quad of the given half width around a-b, with square
// caps. Every quad winds the same way, so overlaps add coverage instead
// of cancelling it.
func strokeLine(ras *vector.Rasterizer, a, b mandala.Point, half float64) {
	d := b.Sub(a)
	length := d.Length()
	var u mandala.Vec2
	if length == 0 {
		u = mandala.V2(1, 0)
	} else {
		u = d.Mul(1 / length)
	}
	n := u.Perp().Mul(half)
	ext := u.Mul(half)
	p0 := a.Add(ext.Neg()).Add(n)
	p1 := b.Add(ext).Add(n)
	p2 := b.Add(ext).Add(n.Neg())
	p3 := a.Add(ext.Neg()).Add(n.Neg())
	ras.MoveTo(float32(p0.X), float32(p0.Y))
	ras.LineTo(float32(p1.X), float32(p1.Y))
	ras.LineTo(float32(p2.X), float32(p2.Y))
	ras.LineTo(float32(p3.X), float32(p3.Y))
	ras.ClosePath()
}

// Encode writes img in the named format: png, bmp or tiff.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ContentType returns the MIME type of format, or "" when unknown.
func ContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	}
	return ""
}
