package room

import (
	"errors"
	"sync"
	"time"
)

var errCallerStopped = errors.New("auto-caller stopped")

// autoCaller fires call once per period while active. Each start bumps the
// generation, and a call only publishes through guard while its generation is
// still current, so nothing is written after stop returns.
type autoCaller struct {
	call func(gen uint64) bool

	mu     sync.Mutex
	gen    uint64
	active bool
	period time.Duration
	timer  *time.Timer
}

func newAutoCaller(call func(gen uint64) bool) *autoCaller {
	return &autoCaller{call: call}
}

// reconcile starts, stops or retimes the caller to match the wanted state.
func (a *autoCaller) reconcile(on bool, period time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !on {
		a.stopLocked()
		return
	}
	if a.active && a.period == period {
		return
	}

	a.stopLocked()
	a.active = true
	a.period = period
	gen := a.gen
	a.timer = time.AfterFunc(period, func() { a.fire(gen) })
}

func (a *autoCaller) stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopLocked()
}

func (a *autoCaller) stopLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.active = false
	a.gen++
}

func (a *autoCaller) running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.active
}

// guard runs publish only if gen is still the live generation. The lock is
// held across publish so a concurrent stop waits for it to finish.
func (a *autoCaller) guard(gen uint64, publish func() error) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.active || gen != a.gen {
		return errCallerStopped
	}
	return publish()
}

func (a *autoCaller) fire(gen uint64) {
	a.mu.Lock()
	if !a.active || gen != a.gen {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	again := a.call(gen)

	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.active || gen != a.gen {
		return
	}
	if !again {
		a.stopLocked()
		return
	}
	a.timer = time.AfterFunc(a.period, func() { a.fire(gen) })
}
