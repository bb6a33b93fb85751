// Package clock abstracts wall-clock scheduling so staged flows can be driven
// by a virtual clock in tests instead of real timers.
package clock

import "time"

// Timer is the cancellable handle returned by AfterFunc.
type Timer interface {
	Stop() bool
}

// Scheduler issues the current time and deferred callbacks.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
}

type realScheduler struct{}

// Real returns a Scheduler backed by the system clock.
func Real() Scheduler {
	return realScheduler{}
}

func (realScheduler) Now() time.Time {
	return time.Now()
}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
