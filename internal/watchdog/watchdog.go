// Package watchdog returns idle conversations to the main menu.
//
// Each user has at most one live timer. Every Reset supersedes the previous
// timer, and a fired timer only counts once its Ticket is claimed, so a
// timer that raced with a Reset or Cancel can never act.
package watchdog

import (
	"sync"
	"time"

	"desyncbot/internal/clock"
	"desyncbot/internal/domain"

	"go.uber.org/zap"
)

// Payload is captured when a timer is scheduled
type Payload struct {
	UserID   int64
	ChatID   int64
	Language domain.Language
}

// Ticket identifies one scheduled timer
type Ticket struct {
	UserID int64
	Seq    uint64
}

// FireFunc receives tickets of expired timers
type FireFunc func(Ticket)

type entry struct {
	seq     uint64
	timer   clock.Timer
	payload Payload
}

// Watchdog keeps the pending inactivity timers of all users
type Watchdog struct {
	delay     time.Duration
	scheduler clock.Scheduler
	logger    *zap.Logger

	mu      sync.Mutex
	seq     uint64
	pending map[int64]entry
	onFire  FireFunc
	stopped bool
}

// Option configures a Watchdog
type Option func(*Watchdog)

// WithScheduler replaces the runtime timer
func WithScheduler(s clock.Scheduler) Option {
	return func(w *Watchdog) {
		w.scheduler = s
	}
}

// New creates a watchdog that fires delay after the latest Reset
func New(delay time.Duration, logger *zap.Logger, opts ...Option) *Watchdog {
	w := &Watchdog{
		delay:     delay,
		scheduler: clock.Real{},
		logger:    logger,
		pending:   make(map[int64]entry),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnFire sets the function that receives expired tickets. The function is
// expected to Claim the ticket before acting on it.
func (w *Watchdog) OnFire(f FireFunc) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onFire = f
}

// Delay returns the inactivity delay
func (w *Watchdog) Delay() time.Duration {
	return w.delay
}

// Reset cancels the user's pending timer, if any, and schedules a new one
func (w *Watchdog) Reset(p Payload) Ticket {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return Ticket{}
	}

	if old, ok := w.pending[p.UserID]; ok {
		old.timer.Stop()
	}

	w.seq++
	ticket := Ticket{UserID: p.UserID, Seq: w.seq}
	timer := w.scheduler.AfterFunc(w.delay, func() { w.fire(ticket) })
	w.pending[p.UserID] = entry{seq: ticket.Seq, timer: timer, payload: p}

	w.logger.Debug("Inactivity timer reset",
		zap.Int64("user_id", p.UserID),
		zap.Int64("chat_id", p.ChatID),
		zap.Duration("delay", w.delay),
	)
	return ticket
}

// Claim removes the pending timer identified by the ticket and returns its
// payload. It reports false when the ticket was superseded or cancelled.
func (w *Watchdog) Claim(t Ticket) (Payload, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.pending[t.UserID]
	if !ok || e.seq != t.Seq {
		return Payload{}, false
	}
	delete(w.pending, t.UserID)
	return e.payload, true
}

// Cancel drops the user's pending timer
func (w *Watchdog) Cancel(userID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if e, ok := w.pending[userID]; ok {
		e.timer.Stop()
		delete(w.pending, userID)
	}
}

// Pending returns the payload of the user's live timer
func (w *Watchdog) Pending(userID int64) (Payload, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	e, ok := w.pending[userID]
	return e.payload, ok
}

// Len returns the number of live timers
func (w *Watchdog) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Stop cancels every pending timer. Later Resets are ignored.
func (w *Watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for userID, e := range w.pending {
		e.timer.Stop()
		delete(w.pending, userID)
	}
	w.stopped = true
}

func (w *Watchdog) fire(t Ticket) {
	w.mu.Lock()
	e, live := w.pending[t.UserID]
	live = live && e.seq == t.Seq
	handler := w.onFire
	w.mu.Unlock()

	if !live {
		return
	}

	w.logger.Info("Inactivity timer fired",
		zap.Int64("user_id", t.UserID),
		zap.Int64("chat_id", e.payload.ChatID),
	)

	if handler == nil {
		w.Claim(t)
		return
	}
	handler(t)
}
