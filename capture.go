//////////////////////////////////////////////////////////////////////////////
//
// Capture loop: source -> normalize -> encode -> publish, at a fixed rate
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package mjpegcast

import (
	"context"
	"image"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/lanikai/mjpegcast/internal/capture"
	"github.com/lanikai/mjpegcast/internal/color"
)

// CaptureLoop drives a capture source and an encoder at a fixed frame rate,
// publishing every encoded frame to a Broadcaster.
//
// Per-frame failures never stop the loop. A failed capture is replaced by a
// black placeholder of the configured size so clients keep receiving parts at
// a steady cadence; a failed encode drops that tick's frame.
type CaptureLoop struct {
	src capture.Source
	enc Encoder
	b   *Broadcaster

	width, height int
	interval      time.Duration

	captureErrors uint64
	encodeErrors  uint64
}

// CaptureStats counts per-frame failures since the loop was created.
type CaptureStats struct {
	CaptureErrors uint64
	EncodeErrors  uint64
}

func NewCaptureLoop(src capture.Source, enc Encoder, b *Broadcaster, cfg Config) *CaptureLoop {
	return &CaptureLoop{
		src:      src,
		enc:      enc,
		b:        b,
		width:    cfg.Width,
		height:   cfg.Height,
		interval: cfg.FrameInterval(),
	}
}

// Run captures until ctx is done. It only returns on cancellation.
func (loop *CaptureLoop) Run(ctx context.Context) {
	log.Info("Capturing %dx%d every %v", loop.width, loop.height, loop.interval)

	ticker := time.NewTicker(loop.interval)
	defer ticker.Stop()

	for {
		loop.Tick()

		select {
		case <-ctx.Done():
			log.Info("Capture loop stopped: %v", ctx.Err())
			return
		case <-ticker.C:
		}
	}
}

// Tick performs one capture/encode/publish cycle and returns the published
// frame. It returns an error only when the encoder fails, in which case
// nothing is published.
func (loop *CaptureLoop) Tick() (*Frame, error) {
	img := loop.picture()

	jpeg, err := loop.enc.Encode(img)
	if err != nil {
		atomic.AddUint64(&loop.encodeErrors, 1)
		log.Warn("Failed to encode frame: %v", err)
		return nil, errors.Wrap(err, "encode")
	}
	return loop.b.Publish(jpeg), nil
}

// picture captures one picture and normalizes it to RGBA at the configured
// size, substituting a blank picture on failure.
func (loop *CaptureLoop) picture() *image.RGBA {
	pic, err := loop.src.Capture()
	if err == nil {
		var rgba *image.RGBA
		if rgba, err = pic.RGBA(); err == nil {
			return color.Scale(rgba, loop.width, loop.height)
		}
	}

	atomic.AddUint64(&loop.captureErrors, 1)
	log.Warn("Failed to capture: %v", err)

	blank, _ := capture.Blank(loop.width, loop.height).RGBA()
	return blank
}

func (loop *CaptureLoop) Stats() CaptureStats {
	return CaptureStats{
		CaptureErrors: atomic.LoadUint64(&loop.captureErrors),
		EncodeErrors:  atomic.LoadUint64(&loop.encodeErrors),
	}
}
