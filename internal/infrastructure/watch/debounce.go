// Package watch observes the workspace data directory and reports
// debounced change events.
package watch

import (
	"sync"
	"time"
)

// ChangeDebouncer coalesces a burst of workspace file events into a single
// delivery. Only the most recent event of a burst survives; it is delivered
// once the burst has been quiet for the window duration.
type ChangeDebouncer struct {
	window  time.Duration
	deliver func(ChangeEvent)

	mu      sync.Mutex
	timer   *time.Timer
	pending ChangeEvent
}

// NewChangeDebouncer creates a debouncer delivering coalesced events to
// deliver after the given quiet window.
func NewChangeDebouncer(window time.Duration, deliver func(ChangeEvent)) *ChangeDebouncer {
	return &ChangeDebouncer{
		window:  window,
		deliver: deliver,
	}
}

// Observe records ev as the pending event and resets the quiet window.
// Delivery happens only after Observe has not been called for the window
// duration.
func (d *ChangeDebouncer) Observe(ev ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = ev
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *ChangeDebouncer) fire() {
	d.mu.Lock()
	ev := d.pending
	d.mu.Unlock()

	d.deliver(ev)
}

// Stop cancels any pending delivery.
func (d *ChangeDebouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
