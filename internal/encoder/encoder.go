package encoder

import (
	"image"
)

// Encoder encodes an image to a specific output format.
type Encoder interface {
	// Format returns the output format name (e.g. "jpeg").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	Encode(img image.Image, quality int) ([]byte, error)

	// Extension returns the file extension without dot.
	Extension() string
}
