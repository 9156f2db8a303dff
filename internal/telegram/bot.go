package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BruksfildServices01/barber-bot/internal/conversation"
	"github.com/BruksfildServices01/barber-bot/internal/logging"
)

// Handler turns one input into replies.
type Handler interface {
	Handle(ctx context.Context, in conversation.Input) ([]conversation.Reply, error)
}

// Bot reads updates and renders the handler's replies.
type Bot struct {
	api     botAPI
	handler Handler
	logger  *slog.Logger
}

func NewBot(api botAPI, handler Handler, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{api: api, handler: handler, logger: logger}
}

// Run handles updates one at a time until ctx is done or the channel
// closes. A missing admin id stops the loop with an error.
func (b *Bot) Run(ctx context.Context, updates <-chan tgbotapi.Update) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.HandleUpdate(ctx, upd); err != nil {
				return err
			}
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, upd tgbotapi.Update) error {
	in, ok := toInput(upd)
	if !ok {
		return nil
	}

	logger := b.logger.With("update_id", upd.UpdateID)
	ctx = logging.ContextWithLogger(ctx, logger)

	replies, err := b.handler.Handle(ctx, in)
	if err != nil {
		if errors.Is(err, conversation.ErrAdminNotConfigured) {
			return err
		}
		logger.Error("handle update", "error", err)
		return nil
	}

	var callbackID string
	if upd.CallbackQuery != nil {
		callbackID = upd.CallbackQuery.ID
	}
	b.render(logger, in.ChatID, callbackID, replies)
	return nil
}

func toInput(upd tgbotapi.Update) (conversation.Input, bool) {
	switch {
	case upd.Message != nil && upd.Message.From != nil:
		msg := upd.Message
		in := conversation.Input{
			UserID:   msg.From.ID,
			ChatID:   msg.Chat.ID,
			Username: msg.From.UserName,
			FullName: fullName(msg.From),
			Text:     msg.Text,
		}
		if msg.IsCommand() && msg.Command() == "start" {
			in.Text = conversation.CommandStart
		}
		if len(msg.Photo) > 0 {
			// the last size is the largest
			in.PhotoFileID = msg.Photo[len(msg.Photo)-1].FileID
			in.Text = msg.Caption
		}
		return in, true

	case upd.CallbackQuery != nil && upd.CallbackQuery.From != nil:
		cq := upd.CallbackQuery
		in := conversation.Input{
			UserID:   cq.From.ID,
			ChatID:   cq.From.ID,
			Username: cq.From.UserName,
			FullName: fullName(cq.From),
			Callback: cq.Data,
		}
		if cq.Message != nil {
			in.ChatID = cq.Message.Chat.ID
			in.MessageID = cq.Message.MessageID
		}
		return in, true
	}
	return conversation.Input{}, false
}

func fullName(u *tgbotapi.User) string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (b *Bot) render(logger *slog.Logger, chatID int64, callbackID string, replies []conversation.Reply) {
	if callbackID != "" {
		answer := tgbotapi.NewCallback(callbackID, "")
		for _, r := range replies {
			if r.Alert {
				answer = tgbotapi.NewCallbackWithAlert(callbackID, r.Text)
				break
			}
		}
		if _, err := b.api.Request(answer); err != nil {
			logger.Warn("answer callback", "error", err)
		}
	}

	for _, r := range replies {
		if r.Alert {
			continue
		}
		if r.DeleteMessageID != 0 {
			if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, r.DeleteMessageID)); err != nil {
				logger.Warn("delete message", "error", err)
			}
		}
		if r.Location != nil {
			if _, err := b.api.Send(tgbotapi.NewLocation(chatID, r.Location.Latitude, r.Location.Longitude)); err != nil {
				logger.Warn("send location", "error", err)
			}
		}
		if r.Text == "" {
			continue
		}

		msg := tgbotapi.NewMessage(chatID, r.Text)
		switch {
		case len(r.Inline) > 0:
			msg.ReplyMarkup = inlineMarkup(r.Inline)
		case len(r.Keyboard) > 0:
			msg.ReplyMarkup = replyMarkup(r.Keyboard)
		case r.RemoveKeyboard:
			msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
		}
		if _, err := b.api.Send(msg); err != nil {
			logger.Warn("send message", "error", classify(err))
		}
	}
}

func replyMarkup(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	buttons := make([][]tgbotapi.KeyboardButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			r = append(r, tgbotapi.NewKeyboardButton(label))
		}
		buttons = append(buttons, r)
	}
	kb := tgbotapi.NewReplyKeyboard(buttons...)
	kb.ResizeKeyboard = true
	return kb
}

func inlineMarkup(rows [][]conversation.Button) tgbotapi.InlineKeyboardMarkup {
	buttons := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		r := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		buttons = append(buttons, r)
	}
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}
