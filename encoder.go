package mjpegcast

import (
	"bytes"
	"image"
	"image/jpeg"

	"github.com/pkg/errors"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 75

// Encoder turns a normalized picture into compressed image bytes.
type Encoder interface {
	Encode(img image.Image) ([]byte, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(img image.Image) ([]byte, error)

func (f EncoderFunc) Encode(img image.Image) ([]byte, error) {
	return f(img)
}

// JPEGEncoder encodes baseline JPEG at a fixed quality (1-100).
type JPEGEncoder struct {
	Quality int
}

func (e JPEGEncoder) Encode(img image.Image) ([]byte, error) {
	q := e.Quality
	if q <= 0 {
		q = DefaultQuality
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: q}); err != nil {
		return nil, errors.Wrap(err, "jpeg encode")
	}
	return buf.Bytes(), nil
}
