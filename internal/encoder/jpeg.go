package encoder

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

// DefaultQuality matches the quality of the original progress strip.
const DefaultQuality = 80

// JPEGEncoder encodes previews to JPEG. It is the default preview format.
type JPEGEncoder struct {
	Quality int
}

func (e *JPEGEncoder) Format() string    { return "jpeg" }
func (e *JPEGEncoder) Extension() string { return "jpg" }
func (e *JPEGEncoder) MediaType() string { return "image/jpeg" }

func (e *JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	q := e.Quality
	if q <= 0 || q > 100 {
		q = DefaultQuality
	}

	var buf bytes.Buffer
	buf.Grow(16 * 1024) // thumbnails are small
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(q)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
