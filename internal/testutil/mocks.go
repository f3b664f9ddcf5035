package testutil

import (
	"desyncbot/internal/domain"

	"github.com/stretchr/testify/mock"
	tele "gopkg.in/telebot.v3"
)

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) GetSession(userID int64) (domain.Session, bool, error) {
	args := m.Called(userID)
	return args.Get(0).(domain.Session), args.Bool(1), args.Error(2)
}

func (m *MockSessionRepository) SetLanguage(userID int64, lang domain.Language) error {
	args := m.Called(userID, lang)
	return args.Error(0)
}

func (m *MockSessionRepository) SetSelectedProduct(userID int64, productID string) error {
	args := m.Called(userID, productID)
	return args.Error(0)
}

// MockMessenger is a mock for the Telegram send/edit API
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(to, what, opts)
	msg, _ := args.Get(0).(*tele.Message)
	return msg, args.Error(1)
}

func (m *MockMessenger) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	args := m.Called(msg, what, opts)
	edited, _ := args.Get(0).(*tele.Message)
	return edited, args.Error(1)
}
