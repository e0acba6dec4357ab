// Package debounce coalesces bursts of events into one call after a quiet window.
package debounce

import (
	"sync"
	"time"
)

// Debouncer calls fn with the most recent value once no Trigger has happened for
// the configured window. Intermediate values are dropped, not queued.
type Debouncer[T any] struct {
	window time.Duration
	fn     func(T)

	mu      sync.Mutex
	timer   *time.Timer
	pending T
	gen     uint64
	stopped bool
}

// New returns a Debouncer with the given quiet window.
func New[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{window: window, fn: fn}
}

// Trigger records value and restarts the quiet window.
func (d *Debouncer[T]) Trigger(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending = value
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.fire(gen) })
}

// Pending reports whether a call is scheduled.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.timer != nil
}

// Stop cancels any scheduled call and ignores later triggers.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// fire runs only for the latest trigger; a timer that lost the race with a newer
// Trigger sees a stale generation and does nothing.
func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.timer = nil
	d.mu.Unlock()

	d.fn(value)
}
