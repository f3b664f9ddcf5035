package repository

import (
	"desyncbot/internal/domain"
)

// SessionRepository defines per-user session storage. Implementations must
// be safe for concurrent use by different users.
type SessionRepository interface {
	GetSession(userID int64) (domain.Session, bool, error)
	SetLanguage(userID int64, lang domain.Language) error
	SetSelectedProduct(userID int64, productID string) error
}
