package capture

import "github.com/pkg/errors"

var (
	// ErrClosed is returned by Capture after Close.
	ErrClosed = errors.New("capture: source closed")

	errNotRegistered = errors.New("capture: source type not registered")
)
