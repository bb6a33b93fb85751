package clock

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven entirely by Advance calls. Timers fire
// synchronously, in deadline order, on the advancing goroutine.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

type manualTimer struct {
	owner   *Manual
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

// NewManual builds a manual scheduler starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	timer := &manualTimer{owner: m, at: m.now.Add(d), fn: fn}
	m.timers = append(m.timers, timer)
	return timer
}

// Advance moves the clock forward and fires every timer whose deadline passed.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()

	for {
		timer := m.nextDue()
		if timer == nil {
			return
		}
		timer.fn()
	}
}

func (m *Manual) nextDue() *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.timers, func(i, j int) bool {
		return m.timers[i].at.Before(m.timers[j].at)
	})
	for _, timer := range m.timers {
		if timer.stopped || timer.fired {
			continue
		}
		if timer.at.After(m.now) {
			continue
		}
		timer.fired = true
		return timer
	}
	return nil
}

func (t *manualTimer) Stop() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}
