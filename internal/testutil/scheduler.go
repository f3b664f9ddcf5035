package testutil

import (
	"sort"
	"sync"
	"time"

	"desyncbot/internal/clock"
)

// ManualScheduler is a clock.Scheduler whose timers only run when the test
// advances time.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*ManualTimer
}

// ManualTimer is a timer created by ManualScheduler
type ManualTimer struct {
	s       *ManualScheduler
	seq     int
	due     time.Duration
	f       func()
	stopped bool
	fired   bool
}

var _ clock.Scheduler = (*ManualScheduler)(nil)

// NewManualScheduler creates a scheduler at time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers f to run once the scheduler is advanced by d
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) clock.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &ManualTimer{s: s, seq: s.seq, due: s.now + d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves time forward and runs due callbacks in due order on the caller's goroutine
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*ManualTimer
	rest := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.stopped:
		case t.due <= s.now:
			t.fired = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	s.timers = rest
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})
	for _, t := range due {
		t.f()
	}
}

// Pending returns the number of timers that are neither stopped nor fired
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.timers {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Stop cancels the timer
func (t *ManualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Fire runs the callback immediately even if it was stopped, the way a
// runtime timer that already started its goroutine would.
func (t *ManualTimer) Fire() {
	t.s.mu.Lock()
	t.fired = true
	t.s.mu.Unlock()
	t.f()
}
