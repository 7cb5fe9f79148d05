package compress

import (
	"image"

	"github.com/disintegration/imaging"
)

// Normalize converts any decoded image into an 8-bit-per-channel NRGBA
// grid with every pixel fully opaque. Transparency is dropped, not
// composited onto a background: the color channels keep their stored
// values and the alpha byte is overwritten. Higher bit depths are
// truncated to 8 bits by the clone.
func Normalize(img image.Image) *image.NRGBA {
	flat := imaging.Clone(img)
	// Pix layout is R, G, B, A.
	for i := 3; i < len(flat.Pix); i += 4 {
		flat.Pix[i] = 0xFF
	}
	return flat
}
