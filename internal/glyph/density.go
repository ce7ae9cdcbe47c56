package glyph

import (
	"fmt"
	"image"
	"os"
	"sort"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// Printable is every character the default table was ranked from:
// letters, digits, punctuation and space.
const Printable = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" + "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~" + " "

// inkThreshold is the alpha value at which a rendered pixel counts as ink.
const inkThreshold = 128

// Cell is the pixel footprint of one monospace glyph.
type Cell struct {
	Width  int
	Height int
}

// Density is the ink coverage of one rendered glyph.
type Density struct {
	Rune rune
	Ink  int
}

// MonoFont returns the embedded Go Mono face.
func MonoFont() (*truetype.Font, error) {
	f, err := freetype.ParseFont(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go mono: %w", err)
	}
	return f, nil
}

// LoadFont parses a TrueType font from disk.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

// CellSize measures the glyph cell of f at the given point size (72 DPI).
// Width is the advance of 'X', height the line height.
func CellSize(f *truetype.Font, size float64) Cell {
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	adv, ok := face.GlyphAdvance('X')
	if !ok {
		adv = font.MeasureString(face, "X")
	}
	return Cell{
		Width:  adv.Ceil(),
		Height: face.Metrics().Height.Ceil(),
	}
}

// Measure renders each rune into its own cell and counts ink pixels.
func Measure(f *truetype.Font, size float64, chars string) ([]Density, Cell) {
	cell := CellSize(f, size)
	face := truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()
	ascent := face.Metrics().Ascent

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	out := make([]Density, 0, len(chars))
	for _, r := range chars {
		img := image.NewAlpha(image.Rect(0, 0, cell.Width, cell.Height))
		ctx.SetClip(img.Bounds())
		ctx.SetDst(img)
		if _, err := ctx.DrawString(string(r), fixed.Point26_6{Y: ascent}); err != nil {
			// Missing glyphs render nothing and rank as blank.
			out = append(out, Density{Rune: r})
			continue
		}

		ink := 0
		for _, a := range img.Pix {
			if a >= inkThreshold {
				ink++
			}
		}
		out = append(out, Density{Rune: r, Ink: ink})
	}
	return out, cell
}

// Rank orders chars by rendered ink coverage, densest first. Ties keep
// their input order. The result is what the Default table was built from.
func Rank(f *truetype.Font, size float64, chars string) (Table, Cell) {
	d, cell := Measure(f, size, chars)
	sort.SliceStable(d, func(i, j int) bool { return d[i].Ink > d[j].Ink })

	t := make(Table, len(d))
	for i, g := range d {
		t[i] = g.Rune
	}
	return t, cell
}
