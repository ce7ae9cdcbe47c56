package encoder

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func testImage() image.Image {
	return imaging.New(12, 7, color.NRGBA{30, 120, 200, 255})
}

func TestRegistry_AllFormatsRoundtrip(t *testing.T) {
	r := NewRegistry(0)
	for _, f := range r.Available() {
		enc := r.Get(f)
		data, err := enc.Encode(testImage())
		if err != nil {
			t.Fatalf("%s: encode: %v", f, err)
		}
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%s: decode: %v", f, err)
		}
		if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
			t.Errorf("%s: bounds %v", f, b)
		}
	}
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry(90)

	enc, err := r.Resolve("")
	if err != nil || enc.Format() != "jpeg" {
		t.Fatalf("default: %v %v", enc, err)
	}
	if enc.(*JPEGEncoder).Quality != 90 {
		t.Errorf("quality not passed through")
	}
	if enc, _ := r.Resolve("JPG"); enc == nil || enc.Format() != "jpeg" {
		t.Error("jpg alias not resolved")
	}
	if enc, _ := r.Resolve("tif"); enc == nil || enc.Format() != "tiff" {
		t.Error("tif alias not resolved")
	}
	if _, err := r.Resolve("webp"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJPEGEncoder_QualityFallback(t *testing.T) {
	lo, err := (&JPEGEncoder{Quality: 500}).Encode(testImage())
	if err != nil {
		t.Fatal(err)
	}
	def, err := (&JPEGEncoder{}).Encode(testImage())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(lo, def) {
		t.Error("out-of-range quality should fall back to the default")
	}
}
