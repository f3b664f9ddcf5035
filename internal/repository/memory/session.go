// Package memory keeps sessions in process memory. Nothing is persisted and
// entries are never evicted.
package memory

import (
	"sync"

	"desyncbot/internal/domain"
)

// SessionRepo is an in-memory SessionRepository
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[int64]*domain.Session
}

// NewSessionRepo creates an empty session repository
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		sessions: make(map[int64]*domain.Session),
	}
}

// GetSession returns a copy of the user's session
func (r *SessionRepo) GetSession(userID int64) (domain.Session, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[userID]
	if !ok {
		return domain.Session{UserID: userID}, false, nil
	}
	return *session, true, nil
}

// SetLanguage stores the user's language, creating the session if needed
func (r *SessionRepo) SetLanguage(userID int64, lang domain.Language) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session(userID).Language = lang
	return nil
}

// SetSelectedProduct stores the user's product, creating the session if needed
func (r *SessionRepo) SetSelectedProduct(userID int64, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session(userID).SelectedProduct = productID
	return nil
}

// Len returns the number of known sessions
func (r *SessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// session must be called with mu held for writing
func (r *SessionRepo) session(userID int64) *domain.Session {
	session, ok := r.sessions[userID]
	if !ok {
		session = &domain.Session{UserID: userID}
		r.sessions[userID] = session
	}
	return session
}
