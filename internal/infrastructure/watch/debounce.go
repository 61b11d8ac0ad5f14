// Package watch notices workspace snapshot changes and coalesces them into
// settled refresh callbacks.
package watch

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid change events into a single callback invocation.
// Each trigger replaces the pending event, so the callback sees only the
// latest change once the window settles.
type Debouncer struct {
	window   time.Duration
	mu       sync.Mutex
	timer    *time.Timer
	pending  ChangeEvent
	callback func(ChangeEvent)
}

// NewDebouncer creates a debouncer with the given window duration.
func NewDebouncer(window time.Duration, callback func(ChangeEvent)) *Debouncer {
	return &Debouncer{
		window:   window,
		callback: callback,
	}
}

// Trigger records ev and resets the debounce timer. The callback fires with
// the most recent event after the window elapses with no further triggers.
func (d *Debouncer) Trigger(ev ChangeEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = ev
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	ev := d.pending
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(ev)
	}
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
