// Package debounce collapses bursts of input into a single committed value.
package debounce

import (
	"sync"
	"time"
)

// DefaultWindow is the quiet period used when New is given zero.
const DefaultWindow = 300 * time.Millisecond

// Debouncer emits the latest value once input has been quiet for a window.
type Debouncer struct {
	mu        sync.Mutex
	window    time.Duration
	emit      func(string)
	timer     *time.Timer
	gen       uint64 // bumped on every Set and Stop; stale flushes compare against it
	pending   string
	committed string
	stopped   bool
}

// New creates a Debouncer. emit runs on the timer goroutine, outside the lock.
func New(window time.Duration, emit func(string)) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{
		window: window,
		emit:   emit,
	}
}

// Set records raw as the latest input and restarts the quiet window.
func (d *Debouncer) Set(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = raw
	d.gen++

	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.window, func() { d.flush(gen) })
}

// Flush commits the pending value immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.timer.Stop()
	gen := d.gen
	d.mu.Unlock()

	d.flush(gen)
}

func (d *Debouncer) flush(gen uint64) {
	d.mu.Lock()
	// A timer that fired while Set or Stop held the lock is stale.
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.committed = value
	d.timer = nil
	d.gen++
	d.mu.Unlock()

	if d.emit != nil {
		d.emit(value)
	}
}

// Stop cancels any pending emission. Later Set calls are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Committed returns the last emitted value.
func (d *Debouncer) Committed() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.committed
}

// Pending returns the latest raw value passed to Set.
func (d *Debouncer) Pending() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
