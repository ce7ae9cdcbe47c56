package art

import (
	"image"
	"strings"

	"github.com/AnyUserName/asciisketch/internal/glyph"
)

// Rows yields one line of text per luminance row. Rows are produced on
// demand; Reset starts over from the top.
//
//	rows := gen.Glyphs(blended)
//	for rows.Next() {
//		fmt.Println(rows.Text())
//	}
type Rows struct {
	gray  *image.Gray
	table glyph.Table
	y     int
	line  string
	buf   strings.Builder
}

// NewRows builds an iterator over gray using table.
func NewRows(gray *image.Gray, table glyph.Table) *Rows {
	return &Rows{gray: gray, table: table, y: -1}
}

// Len returns the total number of rows.
func (r *Rows) Len() int { return r.gray.Rect.Dy() }

// Width returns the number of glyphs per row.
func (r *Rows) Width() int { return r.gray.Rect.Dx() }

// Next advances to the next row. It returns false once every row has been
// produced.
func (r *Rows) Next() bool {
	if r.y+1 >= r.Len() {
		r.y = r.Len()
		r.line = ""
		return false
	}
	r.y++

	r.buf.Reset()
	r.buf.Grow(r.Width())
	off := r.gray.PixOffset(r.gray.Rect.Min.X, r.gray.Rect.Min.Y+r.y)
	for x := 0; x < r.Width(); x++ {
		r.buf.WriteRune(r.table.Lookup(float64(r.gray.Pix[off+x]) / 255))
	}
	r.line = r.buf.String()
	return true
}

// Text returns the current row.
func (r *Rows) Text() string { return r.line }

// Reset rewinds to before the first row.
func (r *Rows) Reset() {
	r.y = -1
	r.line = ""
}
