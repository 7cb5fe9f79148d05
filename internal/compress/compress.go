package compress

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/AnyUserName/imgpress/internal/encoder"
	"github.com/AnyUserName/imgpress/internal/metrics"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Pipeline error classes. Callers match with errors.Is to map failures
// to exit codes or HTTP statuses.
var (
	// ErrDecode means the input bytes were not a recognized or intact image.
	ErrDecode = errors.New("decode image")
	// ErrEncode means the JPEG encoder rejected the normalized image.
	ErrEncode = errors.New("encode image")
)

var jpegEnc = &encoder.JPEGEncoder{}

// Compress re-encodes an image as JPEG at the given quality (1-100).
// The input format is auto-detected from the bytes; any format with a
// registered decoder (png, jpeg, gif, bmp, tiff, webp) is accepted.
//
// The decoded image is flattened to an 8-bit RGB grid first, so alpha
// and higher bit depths are lost. See Normalize.
func Compress(data []byte, quality int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v (unsupported format or corrupted data)", ErrDecode, err)
	}

	out, err := jpegEnc.Encode(Normalize(img), quality)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	// Best-effort counters. An atomic add cannot fail, so this never
	// affects the result.
	metrics.Record(len(data))

	return out, nil
}
