package notify

import (
	"context"
	"errors"
)

// ErrRecipientBlocked is returned by a Sender when the recipient blocked the
// bot or the chat no longer exists.
var ErrRecipientBlocked = errors.New("recipient blocked the bot")

// Photo is either an already uploaded Telegram file or a public URL.
type Photo struct {
	FileID string
	URL    string
}

func (p Photo) Empty() bool {
	return p.FileID == "" && p.URL == ""
}

type Sender interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendPhoto(ctx context.Context, chatID int64, photo Photo, caption string) error
	// Reachable reports whether the chat can still receive messages.
	Reachable(ctx context.Context, chatID int64) (bool, error)
}

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}
