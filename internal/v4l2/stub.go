//go:build !linux

package v4l2

import (
	"time"

	errors "golang.org/x/xerrors"
)

var (
	ErrTimeout      = errors.New("v4l2: timed out waiting for frame")
	errNotSupported = errors.New("v4l2: Video4Linux2 is only available on Linux")
)

var (
	V4L2_PIX_FMT_YUYV  uint32 = 0x56595559
	V4L2_PIX_FMT_RGB24 uint32 = 0x33424752
	V4L2_PIX_FMT_BGR24 uint32 = 0x33524742
)

type Device struct{}

func Open(path string, cfg Config) (*Device, error) {
	return nil, errors.Errorf("open %s: %w", path, errNotSupported)
}

func (dev *Device) Path() string   { return "" }
func (dev *Device) Width() int     { return 0 }
func (dev *Device) Height() int    { return 0 }
func (dev *Device) Format() uint32 { return 0 }
func (dev *Device) Close() error   { return nil }
func (dev *Device) Start() error   { return errNotSupported }
func (dev *Device) Stop() error    { return nil }

func (dev *Device) ReadFrame(timeout time.Duration) ([]byte, error) {
	return nil, errNotSupported
}
