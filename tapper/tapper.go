package tapper

import (
	"math"
	"sync"
	"time"

	"github.com/jsphweid/musixbooth/clock"
	"github.com/jsphweid/musixbooth/logger"
	"github.com/jsphweid/musixbooth/model"
	"github.com/jsphweid/musixbooth/util"
)

const (
	DefaultResetDelay = 3000 * time.Millisecond
	DefaultDebounce   = 50 * time.Millisecond
	DefaultMaxTaps    = 8
	DefaultMinBPM     = 20
)

type Config struct {
	// ResetDelay is the inactivity window after which the session expires.
	ResetDelay time.Duration
	// Debounce is the minimum spacing between accepted taps.
	Debounce time.Duration
	MaxTaps  int
	MinBPM   int
}

func DefaultConfig() Config {
	return Config{
		ResetDelay: DefaultResetDelay,
		Debounce:   DefaultDebounce,
		MaxTaps:    DefaultMaxTaps,
		MinBPM:     DefaultMinBPM,
	}
}

// Zero fields fall back to the defaults, except Debounce where 0 turns
// debouncing off and only a negative value means the default. MaxTaps below
// 2 could never produce a tempo and is replaced too.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.ResetDelay <= 0 {
		c.ResetDelay = d.ResetDelay
	}
	if c.Debounce < 0 {
		c.Debounce = d.Debounce
	}
	if c.MaxTaps < 2 {
		c.MaxTaps = d.MaxTaps
	}
	if c.MinBPM <= 0 {
		c.MinBPM = d.MinBPM
	}
	return c
}

// Estimator turns tap timestamps into a tempo. A session lives until
// ResetDelay passes without a tap, or until Reset is called.
type Estimator struct {
	mu    sync.Mutex
	cfg   Config
	clock clock.Clock
	log   *logger.Logger

	taps    []int64
	bpm     int
	defined bool

	timer clock.Timer
	// bumped on every arm and reset so late callbacks from replaced
	// timers are ignored
	generation uint64
	onExpire   func(model.TempoState)
	disposed   bool
}

func New(cfg Config, clk clock.Clock) *Estimator {
	if clk == nil {
		clk = clock.New()
	}
	return &Estimator{
		cfg:   cfg.withDefaults(),
		clock: clk,
		log:   logger.Default().With("tapper"),
	}
}

func (e *Estimator) Config() Config {
	return e.cfg
}

// OnExpire registers f to run after the inactivity timer resets the session.
// It is not called for manual resets.
func (e *Estimator) OnExpire(f func(model.TempoState)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onExpire = f
}

// Tap records a tap at the clock's current time.
func (e *Estimator) Tap() model.TempoState {
	return e.RecordTap(e.clock.Now())
}

func (e *Estimator) RecordTap(nowMs int64) model.TempoState {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.disposed {
		return e.stateLocked()
	}

	if n := len(e.taps); n > 0 {
		since := nowMs - e.taps[n-1]
		if since < e.cfg.Debounce.Milliseconds() {
			e.log.Debugf("discarding tap %dms after the previous one", since)
			return e.stateLocked()
		}
		if since >= e.cfg.ResetDelay.Milliseconds() {
			e.log.Debugf("session went stale after %dms, starting over", since)
			e.resetLocked()
		}
	}

	e.taps = append(e.taps, nowMs)
	if len(e.taps) > e.cfg.MaxTaps {
		e.taps = e.taps[len(e.taps)-e.cfg.MaxTaps:]
	}

	if len(e.taps) >= 2 {
		if bpm, ok := Calculate(e.taps, e.cfg.MinBPM); ok {
			e.bpm = bpm
			e.defined = true
		}
	}

	e.armLocked()
	return e.stateLocked()
}

func (e *Estimator) State() model.TempoState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// Taps returns a copy of the current buffer, oldest first.
func (e *Estimator) Taps() []int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := make([]int64, len(e.taps))
	copy(res, e.taps)
	return res
}

func (e *Estimator) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// Dispose resets the session and makes every later tap a no-op.
func (e *Estimator) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
	e.disposed = true
	e.onExpire = nil
}

func (e *Estimator) stateLocked() model.TempoState {
	return model.TempoState{
		BPM:     e.bpm,
		Defined: e.defined,
		Taps:    len(e.taps),
	}
}

func (e *Estimator) resetLocked() {
	e.taps = nil
	e.bpm = 0
	e.defined = false
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.generation++
}

func (e *Estimator) armLocked() {
	if e.timer != nil {
		e.timer.Stop()
	}
	e.generation++
	gen := e.generation
	e.timer = e.clock.AfterFunc(e.cfg.ResetDelay, func() {
		e.expire(gen)
	})
}

func (e *Estimator) expire(gen uint64) {
	e.mu.Lock()
	if e.disposed || gen != e.generation {
		e.mu.Unlock()
		return
	}
	e.log.Debugf("no tap for %v, resetting", e.cfg.ResetDelay)
	e.resetLocked()
	state := e.stateLocked()
	hook := e.onExpire
	e.mu.Unlock()

	if hook != nil {
		hook(state)
	}
}

// Calculate derives the tempo from at least two ordered timestamps. With
// three or more intervals, intervals outside (median/2, median*2) are
// dropped first; if that drops all of them the unfiltered set is used.
// It reports false when the average interval is not positive.
func Calculate(taps []int64, minBPM int) (int, bool) {
	if len(taps) < 2 {
		return 0, false
	}

	intervals := make([]int64, 0, len(taps)-1)
	for i := 1; i < len(taps); i++ {
		intervals = append(intervals, taps[i]-taps[i-1])
	}
	intervals = RejectOutliers(intervals)

	avg := util.Mean(intervals)
	if avg <= 0 {
		return 0, false
	}

	bpm := int(math.Round(60000 / avg))
	return util.Max(bpm, minBPM), true
}

func RejectOutliers(intervals []int64) []int64 {
	if len(intervals) < 3 {
		return intervals
	}

	median := util.Median(intervals)
	kept := util.Filter(intervals, func(v int64) bool {
		return 2*v > median && v < 2*median
	})
	if len(kept) == 0 {
		return intervals
	}
	return kept
}

// Replay feeds recorded timestamps through a fresh estimator on a
// hand-driven clock, so debounce, eviction and expiry apply as if the taps
// had happened live.
func Replay(cfg Config, taps []int64) model.TempoState {
	var start int64
	if len(taps) > 0 {
		start = taps[0]
	}
	clk := clock.NewManual(start)
	e := New(cfg, clk)
	defer e.Dispose()

	state := e.State()
	for _, ts := range taps {
		clk.Set(ts)
		state = e.RecordTap(ts)
	}
	return state
}
