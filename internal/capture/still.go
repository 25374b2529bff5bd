package capture

import (
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/lanikai/mjpegcast/internal/color"
)

// Still serves the same decoded image on every capture. Useful for demos and
// for testing clients without a camera.
type Still struct {
	pic    *Picture
	closed bool
}

// NewStill decodes a JPEG, PNG or GIF image from r.
func NewStill(r io.Reader) (*Still, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode still image")
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return &Still{pic: &Picture{
		Pix:    rgba.Pix,
		Format: color.RGBA32,
		Width:  b.Dx(),
		Height: b.Dy(),
	}}, nil
}

func (s *Still) Capture() (*Picture, error) {
	if s.closed {
		return nil, ErrClosed
	}
	// Pictures are never modified downstream, so sharing is safe.
	return s.pic, nil
}

func (s *Still) Close() error {
	s.closed = true
	return nil
}

func openStill(path string, cfg Config) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewStill(f)
}

func init() {
	RegisterSourceType("file", openStill)
}
