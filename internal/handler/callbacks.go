package handler

import (
	"strings"
	"unicode"

	"desyncbot/internal/dialog"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	ev := dialog.Event{
		UserID: c.Sender().ID,
		ChatID: chatID(c),
		Token:  data,
	}
	if callback.Message != nil {
		ev.MessageID = callback.Message.ID
	}

	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", ev.UserID),
		zap.Int64("chat_id", ev.ChatID),
		zap.Int("message_id", ev.MessageID),
	)

	err := h.dialog.HandleButton(h.ctx, ev)

	// Always acknowledge so the client stops its spinner
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback",
			zap.String("id", callback.ID),
			zap.Error(ackErr),
		)
	}
	return err
}
