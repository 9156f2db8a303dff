package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/BruksfildServices01/barber-bot/internal/notify"
)

func TestReachable(t *testing.T) {
	cases := []struct {
		name    string
		member  tgbotapi.ChatMember
		err     error
		want    bool
		wantErr bool
	}{
		{"member", tgbotapi.ChatMember{Status: "member"}, nil, true, false},
		{"left", tgbotapi.ChatMember{Status: "left"}, nil, false, false},
		{"kicked", tgbotapi.ChatMember{Status: "kicked"}, nil, false, false},
		{"forbidden", tgbotapi.ChatMember{}, &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}, false, false},
		{"chat not found", tgbotapi.ChatMember{}, &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}, false, false},
		{"network", tgbotapi.ChatMember{}, errors.New("timeout"), false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClient(&fakeAPI{member: tc.member, memErr: tc.err})
			got, err := c.Reachable(context.Background(), 5)
			if got != tc.want || (err != nil) != tc.wantErr {
				t.Fatalf("Reachable = %v, %v; want %v, err %v", got, err, tc.want, tc.wantErr)
			}
		})
	}
}

func TestSendPhotoByFileIDOrURL(t *testing.T) {
	api := &fakeAPI{}
	c := NewClient(api)

	if err := c.SendPhoto(context.Background(), 5, notify.Photo{FileID: "abc"}, "Sale"); err != nil {
		t.Fatal(err)
	}
	if err := c.SendPhoto(context.Background(), 5, notify.Photo{URL: "https://cdn/x.jpg"}, ""); err != nil {
		t.Fatal(err)
	}
	if err := c.SendPhoto(context.Background(), 5, notify.Photo{}, ""); err == nil {
		t.Fatal("expected an error for an empty photo")
	}

	first, ok := api.sent[0].(tgbotapi.PhotoConfig)
	if !ok || first.Caption != "Sale" {
		t.Fatalf("unexpected first send %#v", api.sent[0])
	}
	if _, ok := first.File.(tgbotapi.FileID); !ok {
		t.Fatalf("expected a file id upload, got %T", first.File)
	}
	second := api.sent[1].(tgbotapi.PhotoConfig)
	if _, ok := second.File.(tgbotapi.FileURL); !ok {
		t.Fatalf("expected a url upload, got %T", second.File)
	}
}

func TestSendTextMarksBlockedRecipients(t *testing.T) {
	c := NewClient(&fakeAPI{sendErr: &tgbotapi.Error{Code: 403, Message: "Forbidden: bot was blocked by the user"}})

	err := c.SendText(context.Background(), 5, "hi")
	if !errors.Is(err, notify.ErrRecipientBlocked) {
		t.Fatalf("expected ErrRecipientBlocked, got %v", err)
	}
}
