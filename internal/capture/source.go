// Package capture provides the raw picture sources that feed the capture
// loop. A source is selected at runtime by a source spec such as
// "v4l2:/dev/video0" or "test:" (see OpenSource).
package capture

import (
	"image"

	"github.com/lanikai/mjpegcast/internal/color"
	"github.com/lanikai/mjpegcast/internal/logging"
)

var log = logging.New("capture")

// A Source yields one raw picture per call to Capture. Capture may fail
// transiently; callers are expected to carry on with the next call.
type Source interface {
	Capture() (*Picture, error)

	// Free up any resources associated with the source.
	Close() error
}

// Picture is a raw, tightly packed pixel buffer as produced by a Source.
type Picture struct {
	Pix    []byte
	Format color.Format
	Width  int
	Height int
}

// RGBA converts the picture into the layout expected by the encoder.
func (p *Picture) RGBA() (*image.RGBA, error) {
	return color.ToRGBA(p.Pix, p.Format, p.Width, p.Height)
}

// Blank returns an all-black RGB picture of the given size.
func Blank(width, height int) *Picture {
	return &Picture{
		Pix:    make([]byte, color.RGB24.FrameSize(width, height)),
		Format: color.RGB24,
		Width:  width,
		Height: height,
	}
}

// Config carries the geometry requested by the user. Sources may deliver
// pictures of a different size; the capture loop rescales them.
type Config struct {
	Width  int
	Height int
	FPS    int
}
