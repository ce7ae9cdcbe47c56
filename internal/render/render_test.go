package render

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/AnyUserName/asciisketch/internal/glyph"
	"github.com/disintegration/imaging"
)

func TestText_BuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	s := NewText(&buf)
	for _, row := range []string{"H$d", " . ", "   "} {
		if err := s.WriteRow(row); err != nil {
			t.Fatal(err)
		}
	}
	if buf.Len() != 0 {
		t.Error("text written before Flush")
	}
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "H$d\n . \n   \n" {
		t.Errorf("got %q", got)
	}
	if s.Rows() != 3 {
		t.Errorf("rows: %d", s.Rows())
	}
}

type failSink struct{}

func (failSink) WriteRow(string) error { return errors.New("closed") }

func TestTee(t *testing.T) {
	var buf bytes.Buffer
	lines := &Lines{}
	tee := Tee{NewText(&buf), lines}
	tee.WriteRow("ab")
	tee.WriteRow("cd")
	if err := tee.Flush(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != lines.String() || lines.String() != "ab\ncd\n" {
		t.Errorf("text %q lines %q", buf.String(), lines.String())
	}

	if err := (Tee{lines, failSink{}}).WriteRow("x"); err == nil {
		t.Error("expected error from failing sink")
	}
}

func TestPNG_Size(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewPNG(&buf, nil, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	s.WriteRow("HH  ")
	s.WriteRow("H   ")
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}

	img, err := imaging.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := glyph.MonoFont()
	cell := glyph.CellSize(f, DefaultFontSize)
	if want := image.Rect(0, 0, 4*cell.Width, 2*cell.Height); img.Bounds() != want {
		t.Errorf("bounds %v, want %v", img.Bounds(), want)
	}
}

func TestPNG_InkOnlyWhereGlyphsAre(t *testing.T) {
	s, err := NewPNG(&bytes.Buffer{}, nil, 12, nil)
	if err != nil {
		t.Fatal(err)
	}
	s.WriteRow("H" + strings.Repeat(" ", 3))
	img, err := s.Rasterize()
	if err != nil {
		t.Fatal(err)
	}

	cell := glyph.CellSize(s.font, 12)
	dark := func(x0, x1 int) int {
		n := 0
		for y := 0; y < img.Rect.Dy(); y++ {
			for x := x0; x < x1; x++ {
				if img.NRGBAAt(x, y).R < 128 {
					n++
				}
			}
		}
		return n
	}
	if dark(0, cell.Width) == 0 {
		t.Error("no ink in the H cell")
	}
	if n := dark(cell.Width, img.Rect.Dx()); n != 0 {
		t.Errorf("%d dark pixels in blank cells", n)
	}
}
