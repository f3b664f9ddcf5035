package handler

import (
	"context"

	"desyncbot/internal/dialog"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Dialog is the state machine the handler feeds with updates
type Dialog interface {
	HandleCommand(ctx context.Context, ev dialog.Event) error
	HandleButton(ctx context.Context, ev dialog.Event) error
}

// Handler manages all bot interactions
type Handler struct {
	ctx    context.Context
	bot    *tele.Bot
	dialog Dialog
	logger *zap.Logger
}

// NewHandler creates a new handler instance. ctx bounds the rendering done
// on behalf of updates.
func NewHandler(ctx context.Context, bot *tele.Bot, d Dialog, logger *zap.Logger) *Handler {
	return &Handler{
		ctx:    ctx,
		bot:    bot,
		dialog: d,
		logger: logger,
	}
}

// RegisterHandlers installs middlewares and registers all bot handlers
func (h *Handler) RegisterHandlers(middlewares ...tele.MiddlewareFunc) {
	h.bot.Use(middlewares...)

	// Commands
	h.bot.Handle("/"+dialog.CommandStart, h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Every inline button carries a plain callback token
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// chatID returns the chat of the update, falling back to the sender for
// callbacks whose message is no longer available.
func chatID(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return c.Sender().ID
}
