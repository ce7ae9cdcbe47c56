// Package art turns a decoded image into rows of text.
//
// A Generator holds the source image and the per-run tunables. Its stage
// methods (Resize, BlurInvert, BlendAdjust, Glyphs) are pure with respect
// to their inputs: each returns a freshly allocated image and never writes
// to an argument. Generate runs them back to back; package stage runs them
// one deferred step at a time.
package art

import (
	"errors"
	"fmt"
	"math"
)

const (
	DefaultMinLevel uint8   = 78
	DefaultMaxLevel uint8   = 125
	DefaultGamma    float64 = 0.78

	// MaxWidth bounds the working width so pipeline cost stays predictable.
	MaxWidth = 500

	// Glyph cell of a typical system monospace font, in pixels.
	CharWidth  = 6.0
	CharHeight = 11.0

	// BlendRatio is the weight of the blurred, inverted layer.
	BlendRatio = 0.5
	// BlurSigma is the Gaussian radius of the foreground layer.
	BlurSigma = 8.0
)

// ErrInvalidConfig is returned when levels or gamma break their invariants.
var ErrInvalidConfig = errors.New("invalid generator config")

// Config holds the tunables of a run.
type Config struct {
	MinLevel uint8
	MaxLevel uint8
	Gamma    float64
	// Width and Height are the target size before the glyph-cell
	// correction is applied to the height.
	Width  int
	Height int
}

// Validate checks MinLevel < MaxLevel and Gamma > 0.
func (c Config) Validate() error {
	if c.MinLevel >= c.MaxLevel {
		return fmt.Errorf("%w: min level %d must be below max level %d", ErrInvalidConfig, c.MinLevel, c.MaxLevel)
	}
	if !(c.Gamma > 0) || math.IsInf(c.Gamma, 0) {
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidConfig, c.Gamma)
	}
	return nil
}

// Option configures a Generator at construction.
type Option func(g *Generator) error

// WithLevels sets the low and high level thresholds.
func WithLevels(minLevel, maxLevel uint8) Option {
	return func(g *Generator) error { return g.SetLevels(minLevel, maxLevel) }
}

// WithGamma sets the gamma applied inside the level window.
func WithGamma(gamma float64) Option {
	return func(g *Generator) error { return g.SetGamma(gamma) }
}

// WithWidth requests a target width. See SetWidth for when it is ignored.
func WithWidth(w int) Option {
	return func(g *Generator) error {
		g.SetWidth(w)
		return nil
	}
}

// WithHeight requests a target height. See SetHeight for when it is ignored.
func WithHeight(h int) Option {
	return func(g *Generator) error {
		g.SetHeight(h)
		return nil
	}
}

// Generator owns one source image and its configuration.
type Generator struct {
	src *Source
	cfg Config
}

// New builds a generator with default levels. Wide sources are clamped to
// MaxWidth before options apply.
func New(src *Source, opts ...Option) (*Generator, error) {
	g := &Generator{
		src: src,
		cfg: Config{
			MinLevel: DefaultMinLevel,
			MaxLevel: DefaultMaxLevel,
			Gamma:    DefaultGamma,
			Width:    src.Width(),
			Height:   src.Height(),
		},
	}
	if src.Width() > MaxWidth {
		g.SetWidth(MaxWidth)
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// FromBytes decodes data and builds a generator from it.
func FromBytes(data []byte, opts ...Option) (*Generator, error) {
	src, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return New(src, opts...)
}

// Source returns the shared source image.
func (g *Generator) Source() *Source { return g.src }

// Config returns a copy of the current configuration.
func (g *Generator) Config() Config { return g.cfg }

// SetWidth sets the target width and returns the new height. It is a
// no-op returning the current height when w is not smaller than the source
// width, so images are never upscaled. Only stored dimensions change.
func (g *Generator) SetWidth(w int) int {
	if w < 1 || w >= g.src.Width() {
		return g.cfg.Height
	}
	g.cfg.Width = w
	g.cfg.Height = max(1, int(math.Round(float64(w)/g.src.AspectRatio())))
	return g.cfg.Height
}

// SetHeight sets the target height and returns the new width, with the
// same no-op rule as SetWidth.
func (g *Generator) SetHeight(h int) int {
	if h < 1 || h >= g.src.Height() {
		return g.cfg.Width
	}
	g.cfg.Height = h
	g.cfg.Width = max(1, int(math.Round(float64(h)*g.src.AspectRatio())))
	return g.cfg.Width
}

// SetLevels replaces both level thresholds.
func (g *Generator) SetLevels(minLevel, maxLevel uint8) error {
	c := g.cfg
	c.MinLevel, c.MaxLevel = minLevel, maxLevel
	if err := c.Validate(); err != nil {
		return err
	}
	g.cfg = c
	return nil
}

// SetGamma replaces the gamma.
func (g *Generator) SetGamma(gamma float64) error {
	c := g.cfg
	c.Gamma = gamma
	if err := c.Validate(); err != nil {
		return err
	}
	g.cfg = c
	return nil
}

// GridSize returns the number of text columns and rows the art will have.
func (g *Generator) GridSize() (cols, rows int) {
	return g.cfg.Width, correctedHeight(g.cfg.Height)
}

// correctedHeight squashes a pixel height by the glyph cell aspect so the
// text grid is not stretched vertically.
func correctedHeight(h int) int {
	return max(1, int(math.Round(float64(h)*CharWidth/CharHeight)))
}
