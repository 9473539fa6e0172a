package backend

import (
	"sync"
	"time"
)

// debouncer runs the most recently scheduled function once no newer call has
// arrived for interval. Callbacks that lose a race with schedule or cancel
// are dropped by comparing generations.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

func newDebouncer(interval time.Duration) *debouncer {
	if interval < 0 {
		interval = 0
	}
	return &debouncer{interval: interval}
}

// schedule replaces any pending call with fn.
func (d *debouncer) schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.resetLocked()
	gen := d.gen
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		current := gen == d.gen && !d.stopped
		if current {
			d.timer = nil
		}
		d.mu.Unlock()
		if current {
			fn()
		}
	})
}

// cancel drops the pending call, if any.
func (d *debouncer) cancel() {
	d.mu.Lock()
	d.resetLocked()
	d.mu.Unlock()
}

// stop cancels the pending call and refuses later schedules.
func (d *debouncer) stop() {
	d.mu.Lock()
	d.stopped = true
	d.resetLocked()
	d.mu.Unlock()
}

func (d *debouncer) pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *debouncer) resetLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
