package encoder

import (
	"fmt"
	"strings"
)

// Registry holds the preview encoders by format name.
type Registry struct {
	encoders map[string]Encoder
	order    []string
}

// NewRegistry creates a registry with every built-in encoder. quality
// applies to JPEG; zero selects DefaultQuality.
func NewRegistry(quality int) *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}

	for _, enc := range []Encoder{
		&JPEGEncoder{Quality: quality},
		&PNGEncoder{},
		&BMPEncoder{},
		&TIFFEncoder{},
	} {
		r.encoders[enc.Format()] = enc
		r.order = append(r.order, enc.Format())
	}
	return r
}

// Get returns an encoder for the given format, or nil if unknown. "jpg"
// and "tif" are accepted as aliases.
func (r *Registry) Get(format string) Encoder {
	switch f := strings.ToLower(format); f {
	case "jpg":
		return r.encoders["jpeg"]
	case "tif":
		return r.encoders["tiff"]
	default:
		return r.encoders[f]
	}
}

// Resolve returns the encoder for format, or the JPEG encoder when format
// is empty.
func (r *Registry) Resolve(format string) (Encoder, error) {
	if format == "" {
		return r.encoders["jpeg"], nil
	}
	if enc := r.Get(format); enc != nil {
		return enc, nil
	}
	return nil, fmt.Errorf("unknown preview format %q (have %s)", format, strings.Join(r.order, ", "))
}

// Available returns all format names in registration order.
func (r *Registry) Available() []string {
	return append([]string(nil), r.order...)
}

// String returns a summary of available encoders.
func (r *Registry) String() string {
	return fmt.Sprintf("encoders: %s", strings.Join(r.order, ", "))
}
