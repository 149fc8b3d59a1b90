// Package shared provides the latency helpers used by simulated checkout steps.
package shared

import (
	"context"
	"time"
)

// DelayForStep returns the positive override in delayMS for step,
// otherwise defaultDelay. A negative override disables the delay.
func DelayForStep(delayMS map[string]int64, step string, defaultDelay time.Duration) time.Duration {
	ms, ok := delayMS[step]
	switch {
	case !ok || ms == 0:
		return defaultDelay
	case ms < 0:
		return 0
	default:
		return time.Duration(ms) * time.Millisecond
	}
}

// SleepOrDone waits for d or returns ctx.Err() if ctx is done first.
// A non-positive d returns immediately.
func SleepOrDone(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
