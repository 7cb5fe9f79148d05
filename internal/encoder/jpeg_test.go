package encoder

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255,
			})
		}
	}
	return img
}

func TestJPEGEncode_Magic(t *testing.T) {
	enc := &JPEGEncoder{}
	data, err := enc.Encode(testImage(), 80)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		t.Errorf("output does not start with JPEG SOI marker: % x", data[:2])
	}
}

func TestJPEGEncode_QualityFallback(t *testing.T) {
	enc := &JPEGEncoder{}
	img := testImage()

	invalid, err := enc.Encode(img, 0)
	if err != nil {
		t.Fatalf("encode quality 0: %v", err)
	}
	fallback, err := enc.Encode(img, FallbackQuality)
	if err != nil {
		t.Fatalf("encode fallback quality: %v", err)
	}
	if !bytes.Equal(invalid, fallback) {
		t.Error("out-of-range quality did not fall back to FallbackQuality")
	}
}

func TestJPEGEncode_Metadata(t *testing.T) {
	enc := &JPEGEncoder{}
	if enc.Format() != "jpeg" {
		t.Errorf("format: got %q", enc.Format())
	}
	if enc.Extension() != "jpg" {
		t.Errorf("extension: got %q", enc.Extension())
	}
}
