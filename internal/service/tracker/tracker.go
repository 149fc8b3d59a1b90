// Package tracker counts checkout steps that are in flight.
package tracker

import "sync/atomic"

// Tracker counts running steps. The zero value is ready to use.
type Tracker struct {
	running atomic.Int64
}

// Inc marks one more step as running.
func (t *Tracker) Inc() { t.running.Add(1) }

// Dec marks one step as finished.
func (t *Tracker) Dec() { t.running.Add(-1) }

// Track marks a step as running and returns the func that ends it.
func (t *Tracker) Track() (done func()) {
	t.Inc()
	return t.Dec
}

// Running returns the number of running steps.
func (t *Tracker) Running() int64 { return t.running.Load() }

// Busy reports whether any step is running.
func (t *Tracker) Busy() bool { return t.Running() > 0 }
