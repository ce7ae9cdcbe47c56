package art

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when input bytes are not a supported raster image.
var ErrDecode = errors.New("decode image")

// Source is a decoded input image. It is never modified after creation and
// may be shared between stages and runs.
type Source struct {
	img    *image.NRGBA
	format string
	width  int
	height int
	aspect float64
}

// Decode reads raw encoded bytes. Any failure wraps ErrDecode.
func Decode(data []byte) (*Source, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	src, err := NewSource(img)
	if err != nil {
		return nil, err
	}
	src.format = format
	return src, nil
}

// NewSource wraps an already decoded image. Transparent pixels are
// flattened onto white so they read as empty space in the art.
func NewSource(img image.Image) (*Source, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrDecode, b.Dx(), b.Dy())
	}

	var flat *image.NRGBA
	if hasAlpha(img) {
		bg := imaging.New(b.Dx(), b.Dy(), color.White)
		flat = imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
	} else {
		flat = imaging.Clone(img)
	}

	return &Source{
		img:    flat,
		width:  b.Dx(),
		height: b.Dy(),
		aspect: float64(b.Dx()) / float64(b.Dy()),
	}, nil
}

// Image returns the decoded pixels. Callers must not modify them.
func (s *Source) Image() image.Image { return s.img }

// Width returns the source width in pixels.
func (s *Source) Width() int { return s.width }

// Height returns the source height in pixels.
func (s *Source) Height() int { return s.height }

// AspectRatio returns width / height.
func (s *Source) AspectRatio() float64 { return s.aspect }

// Format returns the encoded format name reported by the decoder, or ""
// for sources built with NewSource.
func (s *Source) Format() string { return s.format }

func hasAlpha(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return !o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return true
			}
		}
	}
	return false
}
