// Package config loads mandala settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/gogpu/mandala"
)

// ErrInvalid is returned when a loaded setting is out of range.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds settings shared by the CLI and the server.
type Config struct {
	Width          int      `envconfig:"MANDALA_WIDTH" default:"800"`
	Height         int      `envconfig:"MANDALA_HEIGHT" default:"800"`
	Seed           uint64   `envconfig:"MANDALA_SEED" default:"1"`
	Epochs         int      `envconfig:"MANDALA_EPOCHS" default:"12"`
	MaxEpochs      int      `envconfig:"MANDALA_MAX_EPOCHS" default:"64"`
	Symmetry       float64  `envconfig:"MANDALA_SYMMETRY" default:"0.5"`
	Detail         int      `envconfig:"MANDALA_DETAIL" default:"5"`
	StrokeWidth    float64  `envconfig:"MANDALA_STROKE_WIDTH" default:"1.5"`
	Format         string   `envconfig:"MANDALA_FORMAT" default:"svg"`
	Port           int      `envconfig:"PORT" default:"8080"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"localhost:*"`
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that the mandala options do not cover.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Epochs < 0 || c.MaxEpochs < 0:
		return fmt.Errorf("%w: epochs %d, max %d", ErrInvalid, c.Epochs, c.MaxEpochs)
	case c.Epochs > c.MaxEpochs:
		return fmt.Errorf("%w: epochs %d above max %d", ErrInvalid, c.Epochs, c.MaxEpochs)
	case !(c.StrokeWidth > 0):
		return fmt.Errorf("%w: stroke width %v", ErrInvalid, c.StrokeWidth)
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Port)
	}
	switch c.Format {
	case "svg", "png", "bmp", "tiff":
	default:
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return lvl, nil
}

// Size returns the configured canvas size.
func (c *Config) Size() mandala.Size {
	return mandala.Size{Width: float64(c.Width), Height: float64(c.Height)}
}

// Options returns the generation options for mandala.NewSeeded.
func (c *Config) Options() []mandala.Option {
	return []mandala.Option{
		mandala.WithSymmetry(c.Symmetry),
		mandala.WithVertexDetail(c.Detail),
	}
}
