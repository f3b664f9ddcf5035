package handler

import (
	"desyncbot/internal/dialog"

	tele "gopkg.in/telebot.v3"
)

// inlineMarkup converts view rows into an inline keyboard, nil when the view
// has no buttons.
func inlineMarkup(rows [][]dialog.Button) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}

	keyboard := make([][]tele.InlineButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.InlineButton, 0, len(row))
		for _, b := range row {
			btn := tele.InlineButton{Text: b.Label}
			if b.URL != "" {
				btn.URL = b.URL
			} else {
				btn.Data = b.Token
			}
			buttons = append(buttons, btn)
		}
		keyboard = append(keyboard, buttons)
	}
	return &tele.ReplyMarkup{InlineKeyboard: keyboard}
}

// sendOptions maps view flags onto Bot API options
func sendOptions(v dialog.View) *tele.SendOptions {
	opts := &tele.SendOptions{
		DisableWebPagePreview: v.NoPreview,
		ReplyMarkup:           inlineMarkup(v.Rows),
	}
	if v.Markdown {
		opts.ParseMode = tele.ModeMarkdown
	}
	return opts
}
