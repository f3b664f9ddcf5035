package handler

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"desyncbot/internal/dialog"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Messenger is the part of *tele.Bot the renderer needs
type Messenger interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Renderer delivers dialog views through the Bot API. Transient network
// failures are retried with exponential backoff; API errors are not.
type Renderer struct {
	api        Messenger
	maxRetries uint64
	newBackOff func() backoff.BackOff
	logger     *zap.Logger
}

var _ dialog.Renderer = (*Renderer)(nil)

// RendererOption configures a Renderer
type RendererOption func(*Renderer)

// WithBackOff replaces the exponential retry policy
func WithBackOff(f func() backoff.BackOff) RendererOption {
	return func(r *Renderer) {
		r.newBackOff = f
	}
}

// NewRenderer creates a renderer retrying each request up to maxRetries times
func NewRenderer(api Messenger, maxRetries uint64, logger *zap.Logger, opts ...RendererOption) *Renderer {
	r := &Renderer{
		api:        api,
		maxRetries: maxRetries,
		newBackOff: func() backoff.BackOff { return backoff.NewExponentialBackOff() },
		logger:     logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Send posts the view as a new message
func (r *Renderer) Send(ctx context.Context, chatID int64, v dialog.View) error {
	return r.retry(ctx, "send", chatID, func() error {
		_, err := r.api.Send(tele.ChatID(chatID), v.Text, sendOptions(v))
		return err
	})
}

// Replace edits the given message, sending a new one if the edit fails
func (r *Renderer) Replace(ctx context.Context, chatID int64, messageID int, v dialog.View) error {
	msg := &tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
	err := r.retry(ctx, "edit", chatID, func() error {
		_, err := r.api.Edit(msg, v.Text, sendOptions(v))
		return err
	})
	if err = r.handleEditError(err, chatID, messageID); err == nil {
		return nil
	}
	return r.Send(ctx, chatID, v)
}

// handleEditError treats "message is not modified" as success. Any other
// error is returned so the caller can send a new message instead.
func (r *Renderer) handleEditError(err error, chatID int64, messageID int) error {
	if err == nil {
		return nil
	}

	// The same button was pressed twice and the message already shows this view
	if strings.Contains(err.Error(), "message is not modified") {
		r.logger.Debug("Message already up to date",
			zap.Int64("chat_id", chatID),
			zap.Int("message_id", messageID),
		)
		return nil
	}

	r.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("chat_id", chatID),
		zap.Int("message_id", messageID),
	)
	return err
}

func (r *Renderer) retry(ctx context.Context, op string, chatID int64, f func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(r.newBackOff(), r.maxRetries), ctx)
	return backoff.RetryNotify(
		func() error {
			err := f()
			if err != nil && !shouldRetry(err) {
				return backoff.Permanent(err)
			}
			return err
		},
		policy,
		func(err error, next time.Duration) {
			r.logger.Warn("Telegram request failed, retrying",
				zap.String("op", op),
				zap.Int64("chat_id", chatID),
				zap.Duration("next_attempt_in", next),
				zap.Error(err),
			)
		},
	)
}

// shouldRetry reports whether a network error is worth retrying. Errors
// returned by the Bot API itself are final.
func shouldRetry(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() || opErr.Op == "dial" {
			return true
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
