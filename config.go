//////////////////////////////////////////////////////////////////////////////
//
// Config contains the runtime parameters of the streaming server
//
// Copyright 2019 Lanikai Labs. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package mjpegcast

import (
	"time"

	"github.com/pkg/errors"
)

type Config struct {
	// Capture geometry and cadence.
	Width  int
	Height int
	FPS    int

	// Capture source spec, e.g. "v4l2:/dev/video0" or "test:".
	Source string

	// JPEG quality, 1-100.
	Quality int

	// Frames buffered per client before the client is dropped.
	QueueCapacity int

	// HTTP listen address.
	Addr string

	// Maximum simultaneous HTTP connections; 0 means unlimited.
	MaxClients int

	// Time allowed for writing a single frame to a client. A client that
	// cannot accept a frame within this window is disconnected.
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		Width:         320,
		Height:        180,
		FPS:           30,
		Source:        "test:",
		Quality:       DefaultQuality,
		QueueCapacity: DefaultQueueCapacity,
		Addr:          "127.0.0.1:8080",
		WriteTimeout:  10 * time.Second,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "geometry %dx%d", c.Width, c.Height)
	case c.FPS <= 0 || c.FPS > 240:
		return errors.Wrapf(ErrInvalidConfig, "fps %d out of range", c.FPS)
	case c.Quality < 1 || c.Quality > 100:
		return errors.Wrapf(ErrInvalidConfig, "quality %d out of range", c.Quality)
	case c.QueueCapacity < 1:
		return errors.Wrapf(ErrInvalidConfig, "queue capacity %d", c.QueueCapacity)
	case c.MaxClients < 0:
		return errors.Wrapf(ErrInvalidConfig, "max clients %d", c.MaxClients)
	case c.Source == "":
		return errors.Wrap(ErrInvalidConfig, "no capture source")
	}
	return nil
}

// FrameInterval is the capture period.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}
