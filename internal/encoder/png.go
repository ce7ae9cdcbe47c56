package encoder

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// PNGEncoder encodes lossless previews.
type PNGEncoder struct{}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) MediaType() string { return "image/png" }

func (e *PNGEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
