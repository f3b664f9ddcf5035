package dialog

import "sync"

// userLocks serializes event handling per user
type userLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[int64]*sync.Mutex)}
}

// lock acquires the user's lock and returns its release function
func (l *userLocks) lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
