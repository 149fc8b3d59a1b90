// Package pool provides a non-blocking slot limiter for payments.
package pool

// Pool limits how many payments may be in flight at once.
type Pool struct {
	sem chan struct{}
}

// New creates a pool with at least one and at most 128 slots.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	if size > 128 {
		size = 128
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// TryAcquire reserves a slot without blocking. It reports false when
// every slot is taken.
func (p *Pool) TryAcquire() bool {
	select {
	case p.sem <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release frees a slot taken by TryAcquire.
func (p *Pool) Release() {
	<-p.sem
}

// InUse returns the number of taken slots.
func (p *Pool) InUse() int { return len(p.sem) }
