package glyph

import (
	"strings"
	"testing"
)

func TestDefault_Shape(t *testing.T) {
	if Default.Len() != 95 {
		t.Fatalf("len: got %d, want 95", Default.Len())
	}
	if Default.Densest() != 'H' {
		t.Errorf("densest: got %q", Default.Densest())
	}
	if Default.Sparsest() != ' ' {
		t.Errorf("sparsest: got %q", Default.Sparsest())
	}

	seen := map[rune]bool{}
	for _, r := range Default {
		if seen[r] {
			t.Errorf("duplicate glyph %q", r)
		}
		seen[r] = true
		if !strings.ContainsRune(Printable, r) {
			t.Errorf("glyph %q not printable ascii", r)
		}
	}
	if len(seen) != len([]rune(Printable)) {
		t.Errorf("table covers %d of %d printable chars", len(seen), len([]rune(Printable)))
	}
}

func TestIndex_Endpoints(t *testing.T) {
	if got := Default.Index(0); got != 0 {
		t.Errorf("black: got %d", got)
	}
	if got := Default.Index(1); got != Default.Len()-1 {
		t.Errorf("white: got %d", got)
	}
	// Past half a slot rounds up.
	if got := Default.Index(0.6 / 94); got != 1 {
		t.Errorf("half slot: got %d, want 1", got)
	}
}

func TestIndex_Monotonic(t *testing.T) {
	prev := -1
	for lum := 0; lum <= 255; lum++ {
		i := Default.Index(float64(lum) / 255)
		if i < prev {
			t.Fatalf("index decreased at lum %d: %d < %d", lum, i, prev)
		}
		if Default.Index(float64(lum)/255) != i {
			t.Fatalf("lum %d mapped to different indices", lum)
		}
		prev = i
	}
}

func TestLookup_Clamps(t *testing.T) {
	if Default.Lookup(-0.2) != 'H' {
		t.Error("negative luminance should clamp to densest")
	}
	if Default.Lookup(1.3) != ' ' {
		t.Error("luminance above 1 should clamp to sparsest")
	}
}

func TestRank_MonoFont(t *testing.T) {
	f, err := MonoFont()
	if err != nil {
		t.Fatalf("mono font: %v", err)
	}

	table, cell := Rank(f, 11, Printable)
	if table.Len() != len([]rune(Printable)) {
		t.Fatalf("ranked %d glyphs, want %d", table.Len(), len([]rune(Printable)))
	}
	if table.Sparsest() != ' ' {
		t.Errorf("space should rank last, got %q", table.Sparsest())
	}
	if cell.Width <= 0 || cell.Height <= cell.Width {
		t.Errorf("unexpected cell %dx%d", cell.Width, cell.Height)
	}

	d, _ := Measure(f, 11, "M.")
	if d[0].Ink <= d[1].Ink {
		t.Errorf("'M' ink %d should exceed '.' ink %d", d[0].Ink, d[1].Ink)
	}
}
