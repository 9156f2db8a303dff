package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BruksfildServices01/barber-bot/internal/notify"
)

// botAPI is the part of *tgbotapi.BotAPI the bot uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetChatMember(c tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// Client sends messages through the Bot API. It implements notify.Sender.
type Client struct {
	api botAPI
}

func NewClient(api botAPI) *Client {
	return &Client{api: api}
}

// NewBotAPI connects with token and drops any webhook so long polling works.
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect telegram: %w", err)
	}
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return nil, fmt.Errorf("delete webhook: %w", err)
	}
	return api, nil
}

func (c *Client) SendText(_ context.Context, chatID int64, text string) error {
	_, err := c.api.Send(tgbotapi.NewMessage(chatID, text))
	return classify(err)
}

func (c *Client) SendPhoto(_ context.Context, chatID int64, photo notify.Photo, caption string) error {
	var file tgbotapi.RequestFileData
	switch {
	case photo.FileID != "":
		file = tgbotapi.FileID(photo.FileID)
	case photo.URL != "":
		file = tgbotapi.FileURL(photo.URL)
	default:
		return errors.New("photo has neither file id nor url")
	}

	msg := tgbotapi.NewPhoto(chatID, file)
	msg.Caption = caption
	_, err := c.api.Send(msg)
	return classify(err)
}

// Reachable is false for users who left or blocked the bot, or whose chat
// no longer exists.
func (c *Client) Reachable(_ context.Context, chatID int64) (bool, error) {
	member, err := c.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{ChatID: chatID, UserID: chatID},
	})
	if err != nil {
		if errors.Is(classify(err), notify.ErrRecipientBlocked) {
			return false, nil
		}
		return false, err
	}
	return !member.HasLeft() && !member.WasKicked(), nil
}

// classify maps "blocked" and "chat not found" API errors to
// notify.ErrRecipientBlocked.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusForbidden ||
			(apiErr.Code == http.StatusBadRequest && strings.Contains(apiErr.Message, "chat not found")) {
			return fmt.Errorf("%w: %s", notify.ErrRecipientBlocked, apiErr.Message)
		}
	}
	return err
}

var _ notify.Sender = (*Client)(nil)
