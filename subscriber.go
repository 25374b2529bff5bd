//////////////////////////////////////////////////////////////////////////////
//
// Subscriber queues
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package mjpegcast

import "context"

// SubscriberID is the opaque handle identifying a subscriber within its
// Broadcaster.
type SubscriberID uint64

// A Subscriber owns a bounded FIFO queue of frames. The Broadcaster is the
// only sender; a single consumer drains it with Next or Frames.
type Subscriber struct {
	id    SubscriberID
	queue chan *Frame
}

func newSubscriber(id SubscriberID, capacity int) *Subscriber {
	return &Subscriber{
		id:    id,
		queue: make(chan *Frame, capacity),
	}
}

func (s *Subscriber) ID() SubscriberID {
	return s.id
}

// Cap returns the fixed queue capacity.
func (s *Subscriber) Cap() int {
	return cap(s.queue)
}

// Frames returns the receive side of the queue for use in select
// statements. The channel is closed when the subscriber is removed.
func (s *Subscriber) Frames() <-chan *Frame {
	return s.queue
}

// Next blocks until a frame is available. It returns ErrClosed once the
// subscriber has been removed from its broadcaster, or ctx.Err() if ctx is
// done first.
func (s *Subscriber) Next(ctx context.Context) (*Frame, error) {
	select {
	case f, ok := <-s.queue:
		if !ok {
			return nil, ErrClosed
		}
		return f, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// tryEnqueue never blocks. It reports false if the queue is full.
// Must be called with the broadcaster lock held.
func (s *Subscriber) tryEnqueue(f *Frame) bool {
	select {
	case s.queue <- f:
		return true
	default:
		return false
	}
}

// close ends the stream, discarding anything not yet drained. Must be called
// with the broadcaster lock held, exactly once.
func (s *Subscriber) close() {
	close(s.queue)
	for len(s.queue) > 0 {
		<-s.queue
	}
}
