package mjpegcast

import "github.com/pkg/errors"

var (
	// ErrClosed is returned when dequeuing from a subscriber that has been
	// pruned, unsubscribed, or whose broadcaster was closed.
	ErrClosed = errors.New("mjpegcast: subscriber closed")

	ErrNotFound      = errors.New("mjpegcast: subscriber not found")
	ErrInvalidConfig = errors.New("mjpegcast: invalid configuration")
)
