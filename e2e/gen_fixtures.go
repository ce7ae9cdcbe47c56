//go:build ignore

// gen_fixtures creates sample images for a manual smoke test of render.
// Usage: go run gen_fixtures.go <output_dir>
//
//	asciisketch render fixtures/disc.png --previews out --report out/asciisketch.report.json
//	asciisketch validate out/asciisketch.report.json
package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(err)
	}

	fixtures := map[string]image.Image{
		// Shaded disc: exercises the whole level window.
		"disc.png": disc(240, 240),
		// Gradient in lossy and lossless x/image formats.
		"gradient.jpg":  gradient(320, 180),
		"gradient.bmp":  gradient(320, 180),
		"gradient.tiff": gradient(320, 180),
		// Wider than the 500 column cap.
		"banner.png": gradient(1200, 300),
		// Transparent logo, flattened onto white on decode.
		"logo.png": alphaGradient(100, 100),
	}
	for name, img := range fixtures {
		if err := imaging.Save(img, filepath.Join(dir, name), imaging.JPEGQuality(85)); err != nil {
			panic(err)
		}
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created %d fixtures in %s\n", len(fixtures), dir)
}

func disc(w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{255, 255, 255, 255})
	cx, cy, r := float64(w)/2, float64(h)/2, float64(min(w, h))*0.4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			d := math.Hypot(dx, dy)
			if d > r {
				continue
			}
			// Light from the top left.
			shade := 0.5 + 0.5*(-dx-dy)/(2*r)
			v := uint8(math.Round(40 + 180*shade))
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, 255})
		}
	}
	return img
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}
