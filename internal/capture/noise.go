package capture

import (
	"math/rand"
	"sync"
	"time"

	"github.com/lanikai/mjpegcast/internal/color"
)

// Noise produces random grayscale pictures.
type Noise struct {
	width, height int

	mu     sync.Mutex
	rng    *rand.Rand
	closed bool
}

func NewNoise(width, height int) *Noise {
	return &Noise{
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (n *Noise) Capture() (*Picture, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed {
		return nil, ErrClosed
	}
	pix := make([]byte, color.Gray8.FrameSize(n.width, n.height))
	n.rng.Read(pix)
	return &Picture{Pix: pix, Format: color.Gray8, Width: n.width, Height: n.height}, nil
}

func (n *Noise) Close() error {
	n.mu.Lock()
	n.closed = true
	n.mu.Unlock()
	return nil
}

func init() {
	RegisterSourceType("noise", func(path string, cfg Config) (Source, error) {
		return NewNoise(cfg.Width, cfg.Height), nil
	})
}
