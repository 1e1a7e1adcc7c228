package relink

import (
	"sync"
	"time"
)

// reconnector owns the retry budget and the single pending retry timer.
// The attempt counter never exceeds max; once they are equal nothing
// further is scheduled and the condition is terminal.
type reconnector struct {
	delay time.Duration
	max   int

	mu       sync.Mutex
	attempts int
	timer    *time.Timer
}

func newReconnector(delay time.Duration, max int) *reconnector {
	return &reconnector{delay: delay, max: max}
}

// schedule arms one retry timer that runs fn after the fixed delay. It
// increments the attempt counter before arming and returns the new count.
// It declines when the budget is spent or a timer is already pending.
func (r *reconnector) schedule(fn func()) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.attempts >= r.max || r.timer != nil {
		return r.attempts, false
	}
	r.attempts++
	r.timer = time.AfterFunc(r.delay, func() {
		r.mu.Lock()
		fired := r.timer != nil
		r.timer = nil
		r.mu.Unlock()
		if fired {
			fn()
		}
	})
	return r.attempts, true
}

// cancel clears any pending timer without side effects. A timer that
// already fired but lost the race to cancel will not run fn.
func (r *reconnector) cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

// reset zeroes the attempt counter. Called on successful open and on
// manual disconnect.
func (r *reconnector) reset() {
	r.mu.Lock()
	r.attempts = 0
	r.mu.Unlock()
}

// count returns the current attempt counter.
func (r *reconnector) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts
}

// exhausted reports whether the retry budget is spent.
func (r *reconnector) exhausted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempts >= r.max
}
