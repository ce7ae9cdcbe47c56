// Package glyph holds the character table used to turn luminance into text.
//
// The default table was ranked offline by rendered ink coverage; see Rank
// for the procedure. It never changes at runtime.
package glyph

import "math"

// defaultChars is ordered densest first and ends with a space.
const defaultChars = "H$dgq0pR8bhkBDNQU569@AKyEGOZ24#afuMPS3%ltxWXY1&jnszC7eimowFLTV[]rJcI{}v()?!<>*+/=\\^|\";_~-',:`. "

// Table is an ordered glyph set, index 0 being the densest glyph and the
// last index the sparsest.
type Table []rune

// Default is the 95-glyph table used by the generator.
var Default = Table([]rune(defaultChars))

// Len returns the number of glyphs.
func (t Table) Len() int { return len(t) }

// Densest returns the glyph at index 0.
func (t Table) Densest() rune { return t[0] }

// Sparsest returns the last glyph.
func (t Table) Sparsest() rune { return t[len(t)-1] }

// Index maps a normalized luminance to a table index:
// round(lum * (len-1)). Dark pixels pick dense glyphs.
func (t Table) Index(lum float64) int {
	i := int(math.Floor(lum*float64(len(t)-1) + 0.5))
	if i < 0 {
		return 0
	}
	if i >= len(t) {
		return len(t) - 1
	}
	return i
}

// Lookup returns the glyph for a normalized luminance.
func (t Table) Lookup(lum float64) rune {
	return t[t.Index(lum)]
}

// String returns the glyphs in order.
func (t Table) String() string { return string(t) }
