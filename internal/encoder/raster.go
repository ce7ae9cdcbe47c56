package encoder

import (
	"bytes"
	"image"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// BMPEncoder writes uncompressed bitmaps, handy for diffing stage output
// byte for byte.
type BMPEncoder struct{}

func (e *BMPEncoder) Format() string    { return "bmp" }
func (e *BMPEncoder) Extension() string { return "bmp" }
func (e *BMPEncoder) MediaType() string { return "image/bmp" }

func (e *BMPEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TIFFEncoder writes deflate-compressed TIFF.
type TIFFEncoder struct{}

func (e *TIFFEncoder) Format() string    { return "tiff" }
func (e *TIFFEncoder) Extension() string { return "tiff" }
func (e *TIFFEncoder) MediaType() string { return "image/tiff" }

func (e *TIFFEncoder) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
