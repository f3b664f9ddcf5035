package service

import (
	"fmt"

	"desyncbot/internal/domain"
	"desyncbot/internal/repository"

	"go.uber.org/zap"
)

// SessionService exposes the per-user language and product selection
type SessionService struct {
	repo     repository.SessionRepository
	fallback domain.Language
	logger   *zap.Logger
}

// NewSessionService creates a new session service. fallback is returned for
// users that never picked a language.
func NewSessionService(repo repository.SessionRepository, fallback domain.Language, logger *zap.Logger) *SessionService {
	return &SessionService{
		repo:     repo,
		fallback: fallback,
		logger:   logger,
	}
}

// Language returns the user's language or the fallback
func (s *SessionService) Language(userID int64) domain.Language {
	session, found, err := s.repo.GetSession(userID)
	if err != nil {
		s.logger.Warn("Failed to read session, using fallback language",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return s.fallback
	}
	if !found || !session.HasLanguage() {
		return s.fallback
	}
	return session.Language
}

// SetLanguage stores the user's language
func (s *SessionService) SetLanguage(userID int64, lang domain.Language) error {
	if !lang.Supported() {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, lang)
	}
	if err := s.repo.SetLanguage(userID, lang); err != nil {
		return fmt.Errorf("failed to set language: %w", err)
	}
	return nil
}

// SelectedProduct returns the product the user picked last
func (s *SessionService) SelectedProduct(userID int64) (string, error) {
	session, found, err := s.repo.GetSession(userID)
	if err != nil {
		return "", fmt.Errorf("failed to get session: %w", err)
	}
	if !found || !session.HasProduct() {
		return "", domain.ErrMissingSelection
	}
	return session.SelectedProduct, nil
}

// SelectProduct stores the user's product
func (s *SessionService) SelectProduct(userID int64, productID string) error {
	if productID == "" {
		return fmt.Errorf("product id cannot be empty")
	}
	if err := s.repo.SetSelectedProduct(userID, productID); err != nil {
		return fmt.Errorf("failed to select product: %w", err)
	}
	return nil
}
