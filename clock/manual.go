package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Clock that only moves when told to. Due callbacks run
// synchronously inside Advance and Set, in deadline order.
type Manual struct {
	mu     sync.Mutex
	now    int64
	timers []*manualTimer
}

type manualTimer struct {
	clock   *Manual
	at      int64
	f       func()
	stopped bool
	fired   bool
}

func NewManual(startMs int64) *Manual {
	return &Manual{now: startMs}
}

func (m *Manual) Now() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{clock: m, at: m.now + d.Milliseconds(), f: f}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) Advance(d time.Duration) {
	m.Set(m.Now() + d.Milliseconds())
}

// Set moves the clock to ms and fires everything due by then. Moving
// backwards fires nothing.
func (m *Manual) Set(ms int64) {
	m.mu.Lock()
	if ms > m.now {
		m.now = ms
	}
	var due []*manualTimer
	var pending []*manualTimer
	for _, t := range m.timers {
		switch {
		case t.stopped || t.fired:
		case t.at <= m.now:
			t.fired = true
			due = append(due, t)
		default:
			pending = append(pending, t)
		}
	}
	m.timers = pending
	m.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].at < due[j].at
	})
	for _, t := range due {
		t.f()
	}
}

// Pending counts callbacks that are armed and not yet due.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
