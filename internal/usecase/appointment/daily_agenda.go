package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

// TextSender delivers a plain text message to a chat.
type TextSender interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// DailyAgenda sends every barber with a messaging identity the list of
// tomorrow's appointments.
type DailyAgenda struct {
	repo   domain.Repository
	sender TextSender
	loc    *time.Location
	now    func() time.Time
	logger *slog.Logger
}

func NewDailyAgenda(
	repo domain.Repository,
	sender TextSender,
	loc *time.Location,
	now func() time.Time,
	logger *slog.Logger,
) *DailyAgenda {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DailyAgenda{repo: repo, sender: sender, loc: loc, now: now, logger: logger}
}

// Execute returns how many barbers received an agenda. A failed send is
// logged and does not stop the others.
func (uc *DailyAgenda) Execute(ctx context.Context) (int, error) {
	day := timezone.StartOfDay(uc.now(), uc.loc).AddDate(0, 0, 1)

	barbers, err := uc.repo.ListBarbersWithTelegram(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, b := range barbers {
		apps, err := uc.repo.ListAppointmentsForPeriod(ctx, b.ID, day, day.AddDate(0, 0, 1))
		if err != nil {
			return sent, err
		}
		if len(apps) == 0 {
			continue
		}

		if err := uc.sender.SendText(ctx, b.TelegramID, uc.render(day, apps)); err != nil {
			uc.logger.Warn("agenda delivery failed", "barber_id", b.ID, "error", err)
			continue
		}
		sent++
	}

	return sent, nil
}

func (uc *DailyAgenda) render(day time.Time, apps []models.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📅 Bookings for %s:\n", day.Format(timezone.DateLayout))
	for _, ap := range apps {
		fmt.Fprintf(&b, "⏰ %s %s (%s) %s\n",
			ap.Time.In(uc.loc).Format(timezone.TimeLayout),
			ap.Name,
			ap.Phone,
			ap.Service.Name,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}
