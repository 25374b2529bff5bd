package capture

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrScripted is the failure injected by Scripted.
var ErrScripted = errors.New("capture: scripted failure")

// Scripted wraps another source and makes chosen captures fail. Captures are
// numbered from 1. It is intended for exercising failure handling.
type Scripted struct {
	Source

	mu     sync.Mutex
	n      int
	failOn map[int]bool
}

// NewScripted fails the captures whose ordinal appears in failOn.
func NewScripted(src Source, failOn ...int) *Scripted {
	s := &Scripted{Source: src, failOn: make(map[int]bool)}
	for _, n := range failOn {
		s.failOn[n] = true
	}
	return s
}

func (s *Scripted) Capture() (*Picture, error) {
	s.mu.Lock()
	s.n++
	fail := s.failOn[s.n]
	s.mu.Unlock()

	if fail {
		return nil, ErrScripted
	}
	return s.Source.Capture()
}

// Count returns the number of captures attempted so far.
func (s *Scripted) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}
