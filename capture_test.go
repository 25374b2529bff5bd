package mjpegcast

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanikai/mjpegcast/internal/capture"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 32, 18
	cfg.FPS = 100
	return cfg
}

func decodeSize(t *testing.T, f *Frame) (int, int) {
	t.Helper()
	c, err := jpeg.DecodeConfig(bytes.NewReader(f.JPEG()))
	require.NoError(t, err)
	return c.Width, c.Height
}

func TestTickPublishesEncodedFrame(t *testing.T) {
	cfg := testConfig()
	b := NewBroadcaster(4)
	s := b.Subscribe()
	loop := NewCaptureLoop(capture.NewPattern(cfg.Width, cfg.Height), JPEGEncoder{}, b, cfg)

	f, err := loop.Tick()
	require.NoError(t, err)
	w, h := decodeSize(t, f)
	assert.Equal(t, 32, w)
	assert.Equal(t, 18, h)

	assert.Same(t, f, next(t, s))
}

func TestCaptureFailurePublishesPlaceholder(t *testing.T) {
	cfg := testConfig()
	b := NewBroadcaster(4)
	src := capture.NewScripted(capture.NewPattern(cfg.Width, cfg.Height), 1)

	var encoded *image.RGBA
	enc := EncoderFunc(func(img image.Image) ([]byte, error) {
		encoded = img.(*image.RGBA)
		return JPEGEncoder{}.Encode(img)
	})
	loop := NewCaptureLoop(src, enc, b, cfg)

	f, err := loop.Tick()
	require.NoError(t, err)
	require.NotNil(t, f)

	// Placeholder has the configured size and is black.
	assert.Equal(t, image.Rect(0, 0, 32, 18), encoded.Bounds())
	for i := 0; i < len(encoded.Pix); i += 4 {
		if encoded.Pix[i] != 0 || encoded.Pix[i+1] != 0 || encoded.Pix[i+2] != 0 {
			t.Fatal("placeholder is not black")
		}
	}
	w, h := decodeSize(t, f)
	assert.Equal(t, 32, w)
	assert.Equal(t, 18, h)
	assert.Equal(t, uint64(1), loop.Stats().CaptureErrors)

	// The next capture succeeds again.
	_, err = loop.Tick()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), loop.Stats().CaptureErrors)
	assert.Equal(t, uint64(2), b.Stats().Published)
}

func TestEncodeFailureDropsFrame(t *testing.T) {
	cfg := testConfig()
	b := NewBroadcaster(4)
	boom := errors.New("boom")
	enc := EncoderFunc(func(image.Image) ([]byte, error) { return nil, boom })
	loop := NewCaptureLoop(capture.NewPattern(cfg.Width, cfg.Height), enc, b, cfg)

	f, err := loop.Tick()
	assert.Nil(t, f)
	assert.Equal(t, boom, errors.Cause(err))
	assert.Equal(t, uint64(0), b.Stats().Published)
	assert.Equal(t, uint64(1), loop.Stats().EncodeErrors)
}

func TestCaptureIsScaledToConfiguredSize(t *testing.T) {
	cfg := testConfig()
	b := NewBroadcaster(4)
	loop := NewCaptureLoop(capture.NewPattern(64, 36), JPEGEncoder{}, b, cfg)

	f, err := loop.Tick()
	require.NoError(t, err)
	w, h := decodeSize(t, f)
	assert.Equal(t, cfg.Width, w)
	assert.Equal(t, cfg.Height, h)
}

func TestRunKeepsCadenceThroughFailures(t *testing.T) {
	cfg := testConfig()
	b := NewBroadcaster(DefaultQueueCapacity)
	src := capture.NewScripted(capture.NewPattern(cfg.Width, cfg.Height), 2, 3, 4)
	loop := NewCaptureLoop(src, JPEGEncoder{Quality: 50}, b, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return b.Stats().Published >= 6
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, uint64(3), loop.Stats().CaptureErrors)
}
