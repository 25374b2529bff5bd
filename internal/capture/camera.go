package capture

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lanikai/mjpegcast/internal/color"
	"github.com/lanikai/mjpegcast/internal/v4l2"
)

// Upper bound on how long a single Capture waits for the driver.
const cameraTimeout = 2 * time.Second

// Camera captures from a Video4Linux2 device.
type Camera struct {
	mu     sync.Mutex
	dev    *v4l2.Device
	format color.Format
	closed bool
}

func pixelFormat(fourcc uint32) (color.Format, bool) {
	switch fourcc {
	case v4l2.V4L2_PIX_FMT_YUYV:
		return color.YUYV, true
	case v4l2.V4L2_PIX_FMT_RGB24:
		return color.RGB24, true
	case v4l2.V4L2_PIX_FMT_BGR24:
		return color.BGR24, true
	}
	return 0, false
}

// OpenCamera opens and starts the given device. Any failure here is an
// initialization failure.
func OpenCamera(path string, cfg Config) (*Camera, error) {
	if path == "" {
		path = "/dev/video0"
	}
	dev, err := v4l2.Open(path, v4l2.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
	})
	if err != nil {
		return nil, err
	}

	format, ok := pixelFormat(dev.Format())
	if !ok {
		dev.Close()
		return nil, errors.Errorf("camera %s: unsupported pixel format %08x", path, dev.Format())
	}
	if err := dev.Start(); err != nil {
		dev.Close()
		return nil, err
	}
	log.Info("Opened camera %s at %dx%d (%v)", path, dev.Width(), dev.Height(), format)

	return &Camera{dev: dev, format: format}, nil
}

func (c *Camera) Capture() (*Picture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}

	pix, err := c.dev.ReadFrame(cameraTimeout)
	if err != nil {
		return nil, err
	}
	w, h := c.dev.Width(), c.dev.Height()
	if need := c.format.FrameSize(w, h); len(pix) < need {
		return nil, errors.Errorf("camera %s: short frame (%d of %d bytes)", c.dev.Path(), len(pix), need)
	}
	return &Picture{Pix: pix, Format: c.format, Width: w, Height: h}, nil
}

func (c *Camera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.dev.Close()
}

func init() {
	RegisterSourceType("v4l2", func(path string, cfg Config) (Source, error) {
		return OpenCamera(path, cfg)
	})
}
