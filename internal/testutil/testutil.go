package testutil

import (
	"desyncbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestSession creates a test session
func NewTestSession(userID int64, lang domain.Language, productID string) domain.Session {
	return domain.Session{
		UserID:          userID,
		Language:        lang,
		SelectedProduct: productID,
	}
}
