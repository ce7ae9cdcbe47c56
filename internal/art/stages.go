package art

import (
	"image"
	"math"

	"github.com/AnyUserName/asciisketch/internal/colorspace"
	"github.com/AnyUserName/asciisketch/internal/glyph"
	"github.com/disintegration/imaging"
)

// Clone returns a generator sharing the same source with a frozen copy of
// the current configuration. Runs hold a clone so later setter calls on
// the original cannot change a run in flight.
func (g *Generator) Clone() *Generator {
	c := *g
	return &c
}

// Resize scales the source to the text grid size with a Lanczos filter.
func (g *Generator) Resize() *image.NRGBA {
	cols, rows := g.GridSize()
	return imaging.Resize(g.src.Image(), cols, rows, imaging.Lanczos)
}

// BlurInvert produces the soft foreground layer: a wide Gaussian blur of
// the resized image with every channel inverted.
func (g *Generator) BlurInvert(resized image.Image) *image.NRGBA {
	return imaging.Invert(imaging.Blur(resized, BlurSigma))
}

// BlendAdjust averages resized and foreground per channel, then stretches
// the V channel of each blended pixel through the configured levels. The
// result is a new image; both inputs are left untouched.
func (g *Generator) BlendAdjust(resized, foreground image.Image) *image.NRGBA {
	a := toNRGBA(resized)
	b := toNRGBA(foreground)
	levels := colorspace.NewLevels(g.cfg.MinLevel, g.cfg.MaxLevel, g.cfg.Gamma)

	w := min(a.Rect.Dx(), b.Rect.Dx())
	h := min(a.Rect.Dy(), b.Rect.Dy())
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		ai := a.PixOffset(a.Rect.Min.X, a.Rect.Min.Y+y)
		bi := b.PixOffset(b.Rect.Min.X, b.Rect.Min.Y+y)
		di := dst.PixOffset(0, y)
		for x := 0; x < w; x++ {
			r := blendChannel(a.Pix[ai], b.Pix[bi], BlendRatio)
			gr := blendChannel(a.Pix[ai+1], b.Pix[bi+1], BlendRatio)
			bl := blendChannel(a.Pix[ai+2], b.Pix[bi+2], BlendRatio)

			hue, sat, val := colorspace.RGBToHSV(r, gr, bl)
			r, gr, bl = colorspace.HSVToRGB(hue, sat, levels.Adjust(val))

			dst.Pix[di] = toByte(r)
			dst.Pix[di+1] = toByte(gr)
			dst.Pix[di+2] = toByte(bl)
			dst.Pix[di+3] = 0xff

			ai += 4
			bi += 4
			di += 4
		}
	}
	return dst
}

// Grayscale reduces the blended image to luminance.
func (g *Generator) Grayscale(blended image.Image) *image.Gray {
	gray := imaging.Grayscale(blended)
	out := image.NewGray(gray.Rect)
	for i := range out.Pix {
		out.Pix[i] = gray.Pix[i*4]
	}
	return out
}

// Glyphs converts the blended image to luminance and returns a lazy row
// iterator over the default glyph table.
func (g *Generator) Glyphs(blended image.Image) *Rows {
	return NewRows(g.Grayscale(blended), glyph.Default)
}

// Generate runs every stage synchronously and collects the rows.
func (g *Generator) Generate() []string {
	resized := g.Resize()
	fg := g.BlurInvert(resized)
	rows := g.Glyphs(g.BlendAdjust(resized, fg))

	out := make([]string, 0, rows.Len())
	for rows.Next() {
		out = append(out, rows.Text())
	}
	return out
}

// blendChannel mixes two bytes and normalizes the result to [0, 1].
func blendChannel(p1, p2 uint8, ratio float64) float64 {
	return (float64(p1)*(1-ratio) + float64(p2)*ratio) / 255
}

func toByte(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	return imaging.Clone(img)
}
