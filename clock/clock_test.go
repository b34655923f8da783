package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualFiresDueCallbacksInOrder(t *testing.T) {
	m := NewManual(0)
	var fired []string
	m.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "late") })
	m.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "early") })

	m.Advance(99 * time.Millisecond)
	assert.Empty(t, fired)
	assert.Equal(t, 2, m.Pending())

	m.Advance(time.Second)
	assert.Equal(t, []string{"early", "late"}, fired)
	assert.Equal(t, int64(1099), m.Now())
	assert.Equal(t, 0, m.Pending())
}

func TestManualStoppedTimerNeverFires(t *testing.T) {
	m := NewManual(1000)
	var fired bool
	timer := m.AfterFunc(time.Second, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	m.Set(5000)
	assert.False(t, fired)
}

func TestManualStopAfterFire(t *testing.T) {
	m := NewManual(0)
	timer := m.AfterFunc(10*time.Millisecond, func() {})
	m.Set(10)
	assert.False(t, timer.Stop())
}

func TestManualCallbackMayRearm(t *testing.T) {
	m := NewManual(0)
	var count int
	var rearm func()
	rearm = func() {
		count++
		m.AfterFunc(time.Second, rearm)
	}
	m.AfterFunc(time.Second, rearm)

	m.Set(1000)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, m.Pending())

	m.Set(2000)
	assert.Equal(t, 2, count)
}

func TestManualDoesNotRunBackwards(t *testing.T) {
	m := NewManual(500)
	m.Set(100)
	assert.Equal(t, int64(500), m.Now())
}

func TestRealClockIsMonotonic(t *testing.T) {
	c := New()
	first := c.Now()
	second := c.Now()
	assert.GreaterOrEqual(t, second, first)

	done := make(chan struct{})
	c.AfterFunc(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("real timer never fired")
	}
}
