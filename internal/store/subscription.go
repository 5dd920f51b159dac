package store

import "sync"

// subscription delivers snapshots on its own goroutine. Offers never block:
// a newer snapshot replaces one that has not been delivered yet.
type subscription struct {
	fn func(*Snapshot)

	mu      sync.Mutex
	pending *Snapshot
	queued  bool
	stopped bool

	wake chan struct{}
	done chan struct{}
	once sync.Once
}

func newSubscription(fn func(*Snapshot)) *subscription {
	return &subscription{
		fn:   fn,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

func (s *subscription) offer(snap *Snapshot) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.pending, s.queued = snap, true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) run() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}

		snap, ok, stopped := s.take()
		if stopped {
			return
		}
		if ok {
			s.fn(snap)
		}
	}
}

// take claims the pending snapshot. Checking stopped and claiming happen under
// one lock, so a delivery either begins before stop or never.
func (s *subscription) take() (*Snapshot, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, false, true
	}
	snap, ok := s.pending, s.queued
	s.pending, s.queued = nil, false

	return snap, ok, false
}

// stop ends delivery. No callback begins after stop returns. A callback that
// began before is not waited for, since stop may be called from inside it.
func (s *subscription) stop() {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.pending = nil
		s.queued = false
		s.mu.Unlock()

		close(s.done)
	})
}
