// Package preview turns intermediate stage images into small thumbnails,
// the progress strip shown while a run is in flight.
package preview

import (
	"encoding/base64"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/AnyUserName/asciisketch/internal/encoder"
	"github.com/AnyUserName/asciisketch/internal/hasher"
	"github.com/AnyUserName/asciisketch/internal/logging"
	"github.com/AnyUserName/asciisketch/internal/report"
	"github.com/AnyUserName/asciisketch/internal/stage"
	"github.com/disintegration/imaging"
)

// MaxHeight is the thumbnail height. Smaller images keep their size.
const MaxHeight = 50

// Entry is one thumbnail produced by a Writer.
type Entry struct {
	Step    string
	Preview report.Preview
	URI     string // data URI, empty unless the Writer keeps them
}

// Writer is a stage observer that encodes a thumbnail per stage. With a
// directory it writes content-addressed files there; with a report it
// records each file against its stage.
type Writer struct {
	dir     string
	enc     encoder.Encoder
	rep     *report.Report
	keepURI bool
	entries []Entry
}

// Option configures a Writer.
type Option func(w *Writer)

// ToDir writes every thumbnail into dir, creating it on first use.
func ToDir(dir string) Option {
	return func(w *Writer) { w.dir = dir }
}

// WithReport records every written thumbnail in rep.
func WithReport(rep *report.Report) Option {
	return func(w *Writer) { w.rep = rep }
}

// KeepDataURIs retains a data URI for each thumbnail.
func KeepDataURIs() Option {
	return func(w *Writer) { w.keepURI = true }
}

// New creates a Writer that encodes with enc.
func New(enc encoder.Encoder, opts ...Option) *Writer {
	w := &Writer{enc: enc}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Observe implements stage.Observer.
func (w *Writer) Observe(st stage.Stage, img image.Image) error {
	thumb := Thumbnail(img, MaxHeight)
	data, err := w.enc.Encode(thumb)
	if err != nil {
		return fmt.Errorf("encode %s preview: %w", st.Step(), err)
	}

	hash := hasher.ContentHash(data, hasher.NameLen)
	e := Entry{
		Step: st.Step(),
		Preview: report.Preview{
			Format: w.enc.Format(),
			Width:  thumb.Bounds().Dx(),
			Height: thumb.Bounds().Dy(),
			Size:   int64(len(data)),
			Hash:   hash,
			Path:   fmt.Sprintf("%s.%s.%s", st.Step(), hash, w.enc.Extension()),
		},
	}
	if w.keepURI {
		e.URI = encodeURI(w.enc.MediaType(), data)
	}

	if w.dir != "" {
		if err := os.MkdirAll(w.dir, 0o755); err != nil {
			return fmt.Errorf("create preview dir: %w", err)
		}
		if err := os.WriteFile(filepath.Join(w.dir, e.Preview.Path), data, 0o644); err != nil {
			return fmt.Errorf("write %s preview: %w", st.Step(), err)
		}
		if w.rep != nil {
			w.rep.SetPreview(e.Step, e.Preview)
		}
	}

	w.entries = append(w.entries, e)
	logging.Logger().Debug("preview", "step", e.Step, "path", e.Preview.Path, "bytes", e.Preview.Size)
	return nil
}

// Entries returns the thumbnails produced so far, in stage order.
func (w *Writer) Entries() []Entry {
	return append([]Entry(nil), w.entries...)
}

// Thumbnail scales img down to maxHeight, keeping the aspect ratio.
func Thumbnail(img image.Image, maxHeight int) *image.NRGBA {
	if img.Bounds().Dy() <= maxHeight {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, 0, maxHeight, imaging.Lanczos)
}

// DataURI encodes img with enc and returns it as a base64 data URI.
func DataURI(enc encoder.Encoder, img image.Image) (string, error) {
	data, err := enc.Encode(img)
	if err != nil {
		return "", err
	}
	return encodeURI(enc.MediaType(), data), nil
}

func encodeURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
