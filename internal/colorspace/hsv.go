// Package colorspace holds the pixel-level color math used by the blend
// stage: RGB/HSV conversion and the levels adjustment applied to V.
//
// All channels are normalized to [0, 1]. Nothing here clamps its inputs;
// callers are expected to pass values already in range.
package colorspace

import "math"

// RGBToHSV converts a normalized RGB triple to HSV, following the colorsys
// formulation. Achromatic inputs return a hue and saturation of zero.
//
// The hue sector is picked by exact comparison against the channel maximum,
// so boundary pixels land in the same sector as the reference output.
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	maxc := max(r, g, b)
	minc := min(r, g, b)
	v = maxc
	if minc == maxc {
		return 0, 0, v
	}

	delta := maxc - minc
	s = delta / maxc
	rc := (maxc - r) / delta
	gc := (maxc - g) / delta
	bc := (maxc - b) / delta

	switch {
	case r == maxc:
		h = bc - gc
	case g == maxc:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}

	h = math.Mod(h/6, 1)
	if h < 0 {
		h++
	}
	if h >= 1 {
		h = 0
	}
	return h, s, v
}

// HSVToRGB converts a normalized HSV triple back to RGB.
func HSVToRGB(h, s, v float64) (r, g, b float64) {
	if s == 0 {
		return v, v, v
	}

	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch i % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}
