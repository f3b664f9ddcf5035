// Package clock abstracts one-shot scheduling so timers can be driven by hand in tests.
package clock

import "time"

// Timer is a handle to a scheduled callback
type Timer interface {
	// Stop prevents the callback from running. It reports false when the
	// callback already ran or was stopped before.
	Stop() bool
}

// Scheduler runs callbacks once after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Real schedules on the runtime timer
type Real struct{}

// AfterFunc calls f in its own goroutine after d
func (Real) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
