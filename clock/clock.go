// Package clock gives the tempo estimator a monotonic millisecond clock and
// cancellable delayed callbacks, so expiry can be driven by hand in tests.
package clock

import (
	"time"
)

type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// ran or was stopped before.
	Stop() bool
}

type Clock interface {
	// Now returns milliseconds since an arbitrary, fixed epoch.
	Now() int64
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct {
	start time.Time
}

// New returns a Clock backed by the runtime's monotonic reading.
func New() Clock {
	return &realClock{start: time.Now()}
}

func (c *realClock) Now() int64 {
	return time.Since(c.start).Milliseconds()
}

func (c *realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
