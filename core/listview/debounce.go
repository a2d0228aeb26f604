package listview

import (
	"sync"
	"time"

	"github.com/peertutor/peertutor/core"
)

// Debouncer coalesces rapid calls into a single one: each Schedule
// resets the timer, so fn only runs after delay of inactivity.
// Cancel must be called on view teardown so a late fire cannot touch
// state after its consumer is gone.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// SearchInput turns raw keystrokes into a debounced, cleaned search
// term. apply receives the lowered term once typing settles.
type SearchInput struct {
	deb   *Debouncer
	apply func(term string)
}

func NewSearchInput(delay time.Duration, apply func(term string)) *SearchInput {
	return &SearchInput{deb: NewDebouncer(delay), apply: apply}
}

// Type records the current raw input value. Only the last value typed
// within the debounce window is applied.
func (si *SearchInput) Type(raw string) {
	si.deb.Schedule(func() { si.apply(core.CleanString(raw, true /* lower */)) })
}

// Close cancels any pending apply. Guaranteed teardown hook.
func (si *SearchInput) Close() {
	si.deb.Cancel()
}
