package store

import (
	"sync"
	"time"
)

// Debounced wraps a Gateway and coalesces rapid successive saves to
// the same key into one write after a quiet period. Only the final
// value of a burst reaches the underlying gateway (last write wins).
//
// If the process terminates before the quiet period elapses the last
// burst is lost; callers that need durability at a known point use
// Flush (Close flushes too).
type Debounced struct {
	inner Gateway
	delay time.Duration

	mu      sync.Mutex
	pending map[string][]byte
	timer   *time.Timer
	err     error
}

// NewDebounced creates a debouncing decorator around inner
func NewDebounced(inner Gateway, delay time.Duration) *Debounced {
	return &Debounced{
		inner:   inner,
		delay:   delay,
		pending: make(map[string][]byte),
	}
}

// Load implements Gateway. A pending save is visible to Load, so a
// caller always reads its own writes.
func (d *Debounced) Load(key string) ([]byte, bool, error) {
	d.mu.Lock()
	if v, ok := d.pending[key]; ok {
		cp := make([]byte, len(v))
		copy(cp, v)
		d.mu.Unlock()
		return cp, true, nil
	}
	d.mu.Unlock()
	return d.inner.Load(key)
}

// Save implements Gateway. The write is deferred; a newer Save for
// the same key supersedes it and restarts the quiet period.
func (d *Debounced) Save(key string, value []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.err; err != nil {
		// Surface the error from a previous background flush once
		d.err = nil
		return err
	}

	cp := make([]byte, len(value))
	copy(cp, value)
	d.pending[key] = cp

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		if err := d.Flush(); err != nil {
			d.mu.Lock()
			d.err = err
			d.mu.Unlock()
		}
	})
	return nil
}

// Remove implements Gateway. Removes are not deferred: a pending save
// for the key is discarded and the key is cleared immediately.
func (d *Debounced) Remove(key string) error {
	d.mu.Lock()
	delete(d.pending, key)
	d.mu.Unlock()
	return d.inner.Remove(key)
}

// Flush writes all pending values to the underlying gateway
func (d *Debounced) Flush() error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	pending := d.pending
	d.pending = make(map[string][]byte)
	d.mu.Unlock()

	for key, value := range pending {
		if err := d.inner.Save(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes any pending write and stops the timer
func (d *Debounced) Close() error {
	return d.Flush()
}
