// Command mandala generates a seeded mandala and writes it as SVG, PNG,
// BMP or TIFF.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/mandala"
	"github.com/gogpu/mandala/internal/config"
	"github.com/gogpu/mandala/internal/raster"
	"github.com/gogpu/mandala/internal/svg"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "mandala:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("mandala", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "canvas width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "canvas height")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	fs.IntVar(&cfg.Epochs, "epochs", cfg.Epochs, "epochs to generate after the first")
	fs.Float64Var(&cfg.Symmetry, "symmetry", cfg.Symmetry, "probability of a mirrored segment walk")
	fs.IntVar(&cfg.Detail, "detail", cfg.Detail, "vertices per segment walk")
	fs.Float64Var(&cfg.StrokeWidth, "stroke", cfg.StrokeWidth, "stroke width")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format: svg, png, bmp or tiff")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	output := fs.String("o", "-", "output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.MaxEpochs < cfg.Epochs {
		cfg.MaxEpochs = cfg.Epochs
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	lvl, _ := cfg.SlogLevel()
	mandala.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl})))
	defer mandala.SetLogger(nil)

	m, err := mandala.NewSeeded(cfg.Size(), cfg.Seed, cfg.Options()...)
	if err != nil {
		return err
	}
	for range cfg.Epochs {
		if err := m.GenerateEpoch(); err != nil {
			return err
		}
	}
	paths := m.Render()

	if *output == "-" {
		if err := writeTo(stdout, m, paths, cfg); err != nil {
			return err
		}
	} else if err := writeFile(*output, m, paths, cfg); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stderr, "wrote %d paths in %d epochs (seed %d, %s) to %s\n",
		len(paths), len(m.Epochs()), cfg.Seed, cfg.Format, *output)
	return nil
}

// writeFile writes to path. The error from Close is returned too.
func writeFile(path string, m *mandala.Mandala, paths []*mandala.Path, cfg *config.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeTo(f, m, paths, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeTo(w io.Writer, m *mandala.Mandala, paths []*mandala.Path, cfg *config.Config) error {
	bw := bufio.NewWriter(w)
	if err := write(bw, m, paths, cfg); err != nil {
		return err
	}
	return bw.Flush()
}

func write(w io.Writer, m *mandala.Mandala, paths []*mandala.Path, cfg *config.Config) error {
	if cfg.Format == "svg" {
		style := svg.DefaultStyle()
		style.StrokeWidth = cfg.StrokeWidth
		return svg.Encode(w, m.Bounds(), paths, style)
	}
	img, err := raster.Rasterize(paths, m.Bounds(), raster.Options{
		Width:       cfg.Width,
		Height:      cfg.Height,
		StrokeWidth: cfg.StrokeWidth,
		Foreground:  color.Black,
		Background:  color.White,
	})
	if err != nil {
		return err
	}
	return raster.Encode(w, img, cfg.Format)
}
