package colorspace

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestHSV_Roundtrip(t *testing.T) {
	steps := []float64{0, 0.05, 0.1, 0.25, 1.0 / 3, 0.5, 0.6, 2.0 / 3, 0.75, 0.9, 1}
	for _, r := range steps {
		for _, g := range steps {
			for _, b := range steps {
				h, s, v := RGBToHSV(r, g, b)
				if h < 0 || h >= 1 {
					t.Fatalf("hue out of range for (%v,%v,%v): %v", r, g, b, h)
				}
				r2, g2, b2 := HSVToRGB(h, s, v)
				if math.Abs(r-r2) > eps || math.Abs(g-g2) > eps || math.Abs(b-b2) > eps {
					t.Fatalf("roundtrip (%v,%v,%v) -> (%v,%v,%v) -> (%v,%v,%v)",
						r, g, b, h, s, v, r2, g2, b2)
				}
			}
		}
	}
}

func TestRGBToHSV_Achromatic(t *testing.T) {
	for _, v := range []float64{0, 0.3, 1} {
		h, s, got := RGBToHSV(v, v, v)
		if h != 0 || s != 0 || got != v {
			t.Errorf("gray %v: got (%v,%v,%v), want (0,0,%v)", v, h, s, got, v)
		}
	}
}

func TestRGBToHSV_PrimarySectors(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b float64
		hue     float64
	}{
		{"red", 1, 0, 0, 0},
		{"yellow", 1, 1, 0, 1.0 / 6},
		{"green", 0, 1, 0, 2.0 / 6},
		{"cyan", 0, 1, 1, 3.0 / 6},
		{"blue", 0, 0, 1, 4.0 / 6},
		{"magenta", 1, 0, 1, 5.0 / 6},
	}
	for _, c := range cases {
		h, s, v := RGBToHSV(c.r, c.g, c.b)
		if math.Abs(h-c.hue) > eps || s != 1 || v != 1 {
			t.Errorf("%s: got (%v,%v,%v), want hue %v", c.name, h, s, v, c.hue)
		}
	}
}

// Ties between channels are resolved by exact comparison in r, g, b order.
// A pixel where red and green share the maximum is treated as red-sector.
func TestRGBToHSV_ExactTieBreak(t *testing.T) {
	h, _, _ := RGBToHSV(0.8, 0.8, 0.2)
	if math.Abs(h-1.0/6) > eps {
		t.Errorf("r==g==max: hue %v, want 1/6", h)
	}
}

func TestHSVToRGB_ZeroSaturation(t *testing.T) {
	r, g, b := HSVToRGB(0.7, 0, 0.4)
	if r != 0.4 || g != 0.4 || b != 0.4 {
		t.Errorf("got (%v,%v,%v)", r, g, b)
	}
}

func TestLevels_Boundaries(t *testing.T) {
	l := NewLevels(78, 125, 0.78)
	lo := 78.0 / 255
	hi := 125.0 / 255
	if got := l.Adjust(lo); got != 0 {
		t.Errorf("at min: got %v, want 0", got)
	}
	if got := l.Adjust(hi); got != 1 {
		t.Errorf("at max: got %v, want 1", got)
	}
	if got := l.Adjust(0); got != 0 {
		t.Errorf("below min: got %v", got)
	}
	if got := l.Adjust(1); got != 1 {
		t.Errorf("above max: got %v", got)
	}
}

func TestLevels_Monotonic(t *testing.T) {
	pairs := [][2]uint8{{78, 125}, {0, 255}, {10, 11}, {200, 254}}
	for _, gamma := range []float64{0.3, 0.78, 1, 2.2} {
		for _, p := range pairs {
			l := NewLevels(p[0], p[1], gamma)
			prev := -1.0
			for i := 0; i <= 1000; i++ {
				v := float64(i) / 1000
				got := l.Adjust(v)
				if got < prev {
					t.Fatalf("levels %v gamma %v: decreased at v=%v (%v < %v)", p, gamma, v, got, prev)
				}
				if got < 0 || got > 1 {
					t.Fatalf("levels %v gamma %v: out of range at v=%v: %v", p, gamma, v, got)
				}
				prev = got
			}
		}
	}
}

func TestAdjustLevel_Midpoint(t *testing.T) {
	// Linear gamma maps the midpoint of the window to 0.5.
	got := AdjustLevel(0.5, 0, 255, 1)
	if math.Abs(got-0.5) > eps {
		t.Errorf("got %v, want 0.5", got)
	}
}

func BenchmarkBlendPixel(b *testing.B) {
	l := NewLevels(78, 125, 0.78)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c := float64(i%256) / 255
		h, s, v := RGBToHSV(c, 1-c, 0.5)
		_, _, _ = HSVToRGB(h, s, l.Adjust(v))
	}
}
