package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"unicode/utf8"

	"github.com/AnyUserName/asciisketch/internal/encoder"
	"github.com/AnyUserName/asciisketch/internal/glyph"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DefaultFontSize is the point size used by NewPNG when size <= 0.
const DefaultFontSize = 10

// PNG collects rows and rasterises them on Flush, dark text on white, one
// monospace cell per glyph.
type PNG struct {
	w    io.Writer
	font *truetype.Font
	size float64
	enc  encoder.Encoder
	rows []string
}

// NewPNG returns an image sink. A nil font selects Go Mono; a nil encoder
// selects PNG.
func NewPNG(w io.Writer, f *truetype.Font, size float64, enc encoder.Encoder) (*PNG, error) {
	if f == nil {
		var err error
		if f, err = glyph.MonoFont(); err != nil {
			return nil, err
		}
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	if enc == nil {
		enc = &encoder.PNGEncoder{}
	}
	return &PNG{w: w, font: f, size: size, enc: enc}, nil
}

func (p *PNG) WriteRow(row string) error {
	p.rows = append(p.rows, row)
	return nil
}

// Flush draws every collected row and writes the encoded image.
func (p *PNG) Flush() error {
	img, err := p.Rasterize()
	if err != nil {
		return err
	}
	data, err := p.enc.Encode(img)
	if err != nil {
		return fmt.Errorf("encode art: %w", err)
	}
	_, err = p.w.Write(data)
	return err
}

// Rasterize draws the rows collected so far.
func (p *PNG) Rasterize() (*image.NRGBA, error) {
	cell := glyph.CellSize(p.font, p.size)
	cols := 0
	for _, r := range p.rows {
		cols = max(cols, utf8.RuneCountInString(r))
	}
	w, h := max(1, cols*cell.Width), max(1, len(p.rows)*cell.Height)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}

	face := truetype.NewFace(p.font, &truetype.Options{Size: p.size, DPI: 72, Hinting: font.HintingFull})
	ascent := face.Metrics().Ascent
	face.Close()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(p.font)
	ctx.SetFontSize(p.size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetSrc(image.NewUniform(color.Black))
	ctx.SetDst(img)
	ctx.SetClip(img.Bounds())

	for i, row := range p.rows {
		pt := fixed.Point26_6{Y: fixed.I(i*cell.Height) + ascent}
		for _, r := range row {
			if r != ' ' {
				if _, err := ctx.DrawString(string(r), pt); err != nil {
					return nil, fmt.Errorf("draw row %d: %w", i, err)
				}
			}
			pt.X += fixed.I(cell.Width)
		}
	}
	return img, nil
}
