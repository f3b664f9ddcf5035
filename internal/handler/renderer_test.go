package handler

import (
	"context"
	"errors"
	"net"
	"testing"

	"desyncbot/internal/dialog"
	"desyncbot/internal/testutil"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

var dialErr = &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

func newTestRenderer(api Messenger) *Renderer {
	return NewRenderer(api, 2, testutil.NewTestLogger(), WithBackOff(func() backoff.BackOff {
		return &backoff.ZeroBackOff{}
	}))
}

func storedMessage(id string) *tele.StoredMessage {
	return &tele.StoredMessage{MessageID: id, ChatID: 10}
}

func TestRenderer_Send(t *testing.T) {
	api := new(testutil.MockMessenger)
	api.On("Send", tele.ChatID(10), "*hello*", mock.MatchedBy(func(opts []interface{}) bool {
		o, ok := opts[0].(*tele.SendOptions)
		return ok && o.ParseMode == tele.ModeMarkdown && o.DisableWebPagePreview
	})).Return(&tele.Message{ID: 1}, nil)

	r := newTestRenderer(api)
	err := r.Send(context.Background(), 10, dialog.View{Text: "*hello*", Markdown: true, NoPreview: true})

	assert.NoError(t, err)
	api.AssertExpectations(t)
}

func TestRenderer_SendRetriesNetworkErrors(t *testing.T) {
	api := new(testutil.MockMessenger)
	api.On("Send", tele.ChatID(10), "hi", mock.Anything).Return(nil, dialErr).Twice()
	api.On("Send", tele.ChatID(10), "hi", mock.Anything).Return(&tele.Message{ID: 1}, nil).Once()

	r := newTestRenderer(api)
	err := r.Send(context.Background(), 10, dialog.View{Text: "hi"})

	assert.NoError(t, err)
	api.AssertNumberOfCalls(t, "Send", 3)
}

func TestRenderer_SendGivesUp(t *testing.T) {
	api := new(testutil.MockMessenger)
	api.On("Send", tele.ChatID(10), "hi", mock.Anything).Return(nil, dialErr)

	r := newTestRenderer(api)
	err := r.Send(context.Background(), 10, dialog.View{Text: "hi"})

	assert.ErrorIs(t, err, dialErr)
	api.AssertNumberOfCalls(t, "Send", 3)
}

func TestRenderer_SendDoesNotRetryAPIErrors(t *testing.T) {
	apiErr := errors.New("telegram: Forbidden: bot was blocked by the user (403)")
	api := new(testutil.MockMessenger)
	api.On("Send", tele.ChatID(10), "hi", mock.Anything).Return(nil, apiErr)

	r := newTestRenderer(api)
	err := r.Send(context.Background(), 10, dialog.View{Text: "hi"})

	assert.ErrorIs(t, err, apiErr)
	api.AssertNumberOfCalls(t, "Send", 1)
}

func TestRenderer_Replace(t *testing.T) {
	tests := []struct {
		name      string
		editErr   error
		expectNew bool
	}{
		{name: "edited", editErr: nil, expectNew: false},
		{name: "not modified", editErr: errors.New("telegram: Bad Request: message is not modified (400)"), expectNew: false},
		{name: "edit failed", editErr: errors.New("telegram: Bad Request: message to edit not found (400)"), expectNew: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(testutil.MockMessenger)
			api.On("Edit", storedMessage("5"), "menu", mock.Anything).Return(&tele.Message{ID: 5}, tt.editErr)
			if tt.expectNew {
				api.On("Send", tele.ChatID(10), "menu", mock.Anything).Return(&tele.Message{ID: 6}, nil)
			}

			r := newTestRenderer(api)
			err := r.Replace(context.Background(), 10, 5, dialog.View{Text: "menu", Replace: true})

			require.NoError(t, err)
			api.AssertExpectations(t)
			if !tt.expectNew {
				api.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestInlineMarkup(t *testing.T) {
	assert.Nil(t, inlineMarkup(nil))

	markup := inlineMarkup([][]dialog.Button{
		{{Label: "Site", URL: "https://desync.pro/"}},
		{{Label: "FAQ", Token: "faq"}, {Label: "Back", Token: "back_to_main"}},
	})

	require.NotNil(t, markup)
	assert.Equal(t, [][]tele.InlineButton{
		{{Text: "Site", URL: "https://desync.pro/"}},
		{{Text: "FAQ", Data: "faq"}, {Text: "Back", Data: "back_to_main"}},
	}, markup.InlineKeyboard)
}

func TestSendOptions(t *testing.T) {
	plain := sendOptions(dialog.View{Text: "x"})
	assert.Empty(t, plain.ParseMode)
	assert.False(t, plain.DisableWebPagePreview)
	assert.Nil(t, plain.ReplyMarkup)

	rich := sendOptions(dialog.View{Text: "x", Markdown: true, NoPreview: true, Rows: [][]dialog.Button{{{Label: "a", Token: "b"}}}})
	assert.Equal(t, tele.ModeMarkdown, rich.ParseMode)
	assert.True(t, rich.DisableWebPagePreview)
	assert.NotNil(t, rich.ReplyMarkup)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "dial", err: dialErr, expected: true},
		{name: "wrapped dial", err: errors.Join(errors.New("telebot"), dialErr), expected: true},
		{name: "timeout", err: timeoutErr{}, expected: true},
		{name: "api error", err: errors.New("telegram: Bad Request (400)"), expected: false},
		{name: "read reset", err: &net.OpError{Op: "read", Err: errors.New("connection reset")}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldRetry(tt.err))
		})
	}
}
