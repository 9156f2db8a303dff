package notify

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barber-bot/internal/models"
)

const DefaultBroadcastConcurrency = 16

const EventBroadcastCompleted = "broadcast.completed"

// EventPublisher receives a summary once a broadcast settles.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type BroadcastCompletedEvent struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// UserLister is the slice of storage the broadcaster reads.
type UserLister interface {
	ListUsersWithTelegram(ctx context.Context) ([]models.User, error)
}

type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

type Outcome struct {
	ChatID int64
	Status Status
	Err    error
}

type Report struct {
	Sent     int
	Skipped  int
	Failed   int
	Outcomes []Outcome
}

func (r Report) Total() int {
	return len(r.Outcomes)
}

// Broadcaster sends one photo with a caption to every known user.
type Broadcaster struct {
	users  UserLister
	sender Sender
	logger *slog.Logger
	limit  int
	events EventPublisher
}

func NewBroadcaster(users UserLister, sender Sender, logger *slog.Logger, limit int) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		limit = DefaultBroadcastConcurrency
	}
	return &Broadcaster{users: users, sender: sender, logger: logger, limit: limit}
}

// WithEvents makes the broadcaster publish a summary after each run.
func (b *Broadcaster) WithEvents(p EventPublisher) *Broadcaster {
	b.events = p
	return b
}

// Broadcast returns once every send has settled. Per-recipient failures end
// up in the report; only failing to list recipients is an error.
func (b *Broadcaster) Broadcast(ctx context.Context, photo Photo, caption string) (Report, error) {
	users, err := b.users.ListUsersWithTelegram(ctx)
	if err != nil {
		return Report{}, err
	}

	outcomes := make([]Outcome, len(users))

	var g errgroup.Group
	g.SetLimit(b.limit)

	for i, u := range users {
		i, chatID := i, u.TelegramID
		g.Go(func() error {
			outcomes[i] = b.deliver(ctx, chatID, photo, caption)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case StatusSent:
			report.Sent++
		case StatusSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
	}

	b.logger.Info("broadcast finished",
		"recipients", len(outcomes),
		"sent", report.Sent,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)

	if b.events != nil {
		ev := BroadcastCompletedEvent{Sent: report.Sent, Skipped: report.Skipped, Failed: report.Failed}
		if err := b.events.PublishJSON(ctx, EventBroadcastCompleted, ev); err != nil {
			b.logger.Warn("publish broadcast summary failed", "error", err)
		}
	}
	return report, nil
}

func (b *Broadcaster) deliver(ctx context.Context, chatID int64, photo Photo, caption string) Outcome {
	ok, err := b.sender.Reachable(ctx, chatID)
	switch {
	case errors.Is(err, ErrRecipientBlocked), err == nil && !ok:
		b.logger.Info("broadcast recipient skipped", "chat_id", chatID, "error", err)
		return Outcome{ChatID: chatID, Status: StatusSkipped, Err: err}
	case err != nil:
		// a failed check says nothing about the recipient; let the send decide
		b.logger.Warn("broadcast reachability check failed", "chat_id", chatID, "error", err)
	}

	if err := b.sender.SendPhoto(ctx, chatID, photo, caption); err != nil {
		if errors.Is(err, ErrRecipientBlocked) {
			b.logger.Info("broadcast recipient blocked the bot", "chat_id", chatID)
			return Outcome{ChatID: chatID, Status: StatusSkipped, Err: err}
		}
		b.logger.Warn("broadcast send failed", "chat_id", chatID, "error", err)
		return Outcome{ChatID: chatID, Status: StatusFailed, Err: err}
	}

	return Outcome{ChatID: chatID, Status: StatusSent}
}
