//////////////////////////////////////////////////////////////////////////////
//
// Broadcast encoded frames from one producer to many subscribers.
//
// Each subscriber has its own bounded queue. Publishing offers the frame to
// every queue without blocking. A subscriber whose queue is full is not
// keeping up (or is already gone), so it is removed on the spot: a slow
// client never delays the producer or the other clients. The frame itself is
// shared, not copied; it is freed by the garbage collector once no queue
// references it.
//
// Copyright 2019 Lanikai Labs LLC. All rights reserved.
//
//////////////////////////////////////////////////////////////////////////////

package mjpegcast

import (
	"sync"
)

// DefaultQueueCapacity is the per-subscriber queue size used when none is
// given.
const DefaultQueueCapacity = 100

// Stats is a snapshot of broadcaster counters.
type Stats struct {
	Published   uint64 // Frames published
	Pruned      uint64 // Subscribers removed because their queue was full
	Subscribers int    // Currently registered subscribers
}

// Broadcaster is a one-to-many frame fan-out. All methods are safe for
// concurrent use; registry changes and publishes are serialized by a single
// mutex, which is never held while a consumer blocks.
type Broadcaster struct {
	mu sync.Mutex

	capacity    int
	subscribers map[SubscriberID]*Subscriber
	nextID      SubscriberID

	// Most recently published frame, handed to new subscribers.
	latest *Frame

	seq    uint64
	pruned uint64
	closed bool
}

// NewBroadcaster returns a broadcaster whose subscribers buffer up to
// capacity frames. A capacity below 1 selects DefaultQueueCapacity.
func NewBroadcaster(capacity int) *Broadcaster {
	if capacity < 1 {
		capacity = DefaultQueueCapacity
	}
	return &Broadcaster{
		capacity:    capacity,
		subscribers: make(map[SubscriberID]*Subscriber),
	}
}

// Subscribe registers a new subscriber. If a frame has already been
// published, it is queued immediately so the new client need not wait a
// full tick. Subscribing to a closed broadcaster yields a subscriber whose
// stream has already ended.
func (b *Broadcaster) Subscribe() *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s := newSubscriber(b.nextID, b.capacity)
	if b.closed {
		s.close()
		return s
	}

	if b.latest != nil {
		s.tryEnqueue(b.latest)
	}
	b.subscribers[s.id] = s

	log.Debug("subscriber %d registered (%d total)", s.id, len(b.subscribers))
	return s
}

// Unsubscribe removes a subscriber, ending its stream. It is how the
// streaming side reports a client disconnect. Returns ErrNotFound if the
// subscriber was already removed.
func (b *Broadcaster) Unsubscribe(id SubscriberID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.subscribers[id]
	if !ok {
		return ErrNotFound
	}
	delete(b.subscribers, id)
	s.close()

	log.Debug("subscriber %d unsubscribed (%d remaining)", id, len(b.subscribers))
	return nil
}

// Publish wraps jpeg in a new Frame and offers it to every subscriber.
// Subscribers whose queue is full are removed. Publishing never blocks on a
// consumer. Only the latest frame is retained, for late subscribers. Returns
// nil if the broadcaster is closed.
func (b *Broadcaster) Publish(jpeg []byte) *Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.seq++
	f := newFrame(b.seq, jpeg)
	b.latest = f

	// Deleting from a map while ranging over it is permitted.
	for id, s := range b.subscribers {
		if s.tryEnqueue(f) {
			continue
		}
		delete(b.subscribers, id)
		s.close()
		b.pruned++
		log.Info("subscriber %d not keeping up (%d frames queued), dropped", id, s.Cap())
	}

	log.Trace(5, "frame %d: %d bytes to %d subscribers", f.Seq, f.Len(), len(b.subscribers))
	return f
}

// Latest returns the most recently published frame, if any.
func (b *Broadcaster) Latest() (*Frame, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.latest, b.latest != nil
}

// Len returns the number of registered subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

// Has reports whether the subscriber is still registered.
func (b *Broadcaster) Has(id SubscriberID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.subscribers[id]
	return ok
}

func (b *Broadcaster) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		Published:   b.seq,
		Pruned:      b.pruned,
		Subscribers: len(b.subscribers),
	}
}

// Close the broadcaster. Every subscriber stream ends, and later publishes
// are ignored.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for id, s := range b.subscribers {
		s.close()
		delete(b.subscribers, id)
	}
	b.latest = nil
	return nil
}
