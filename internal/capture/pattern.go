package capture

import (
	"sync"

	"github.com/lanikai/mjpegcast/internal/color"
)

// Classic 75% SMPTE-style colour bars.
var barColors = [][3]byte{
	{191, 191, 191},
	{191, 191, 0},
	{0, 191, 191},
	{0, 191, 0},
	{191, 0, 191},
	{191, 0, 0},
	{0, 0, 191},
}

// Pattern is a deterministic synthetic source producing colour bars that
// shift one column per captured picture, so consecutive frames differ.
type Pattern struct {
	width, height int

	mu     sync.Mutex
	tick   int
	closed bool
}

func NewPattern(width, height int) *Pattern {
	return &Pattern{width: width, height: height}
}

func (p *Pattern) Capture() (*Picture, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, ErrClosed
	}

	w, h := p.width, p.height
	pix := make([]byte, color.RGB24.FrameSize(w, h))
	for x := 0; x < w; x++ {
		c := barColors[((x+p.tick)%w)*len(barColors)/w]
		for y := 0; y < h; y++ {
			i := 3 * (y*w + x)
			pix[i], pix[i+1], pix[i+2] = c[0], c[1], c[2]
		}
	}
	p.tick++

	return &Picture{Pix: pix, Format: color.RGB24, Width: w, Height: h}, nil
}

func (p *Pattern) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

func init() {
	RegisterSourceType("test", func(path string, cfg Config) (Source, error) {
		return NewPattern(cfg.Width, cfg.Height), nil
	})
}
