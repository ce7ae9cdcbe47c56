package encoder

import (
	"image"
)

// Encoder turns a preview image into file bytes.
type Encoder interface {
	// Format returns the format name ("jpeg", "png", "bmp", "tiff").
	Format() string

	// Encode converts the image to bytes.
	Encode(img image.Image) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string

	// MediaType returns the MIME type used for data URIs.
	MediaType() string
}
