package handler

import (
	"desyncbot/internal/dialog"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID(c)),
		zap.String("username", c.Sender().Username),
	)

	return h.dialog.HandleCommand(h.ctx, dialog.Event{
		UserID:  userID,
		ChatID:  chatID(c),
		Command: dialog.CommandStart,
	})
}

// handleText ignores free text; the bot is driven by buttons only
func (h *Handler) handleText(c tele.Context) error {
	h.logger.Debug("Ignoring text message", zap.Int64("user_id", c.Sender().ID))
	return nil
}
