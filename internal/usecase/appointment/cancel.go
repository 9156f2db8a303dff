package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

const cancelledText = "Your booking at %s on %s at %s was cancelled by the salon."

// CancelAppointment removes a booking on behalf of an admin, which frees
// the slot, and tells the customer about it.
type CancelAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	sender TextSender
	loc    *time.Location
	logger *slog.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	sender TextSender,
	loc *time.Location,
	logger *slog.Logger,
) *CancelAppointment {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CancelAppointment{
		repo:   repo,
		audit:  audit,
		sender: sender,
		loc:    loc,
		logger: logger,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actorID *int64,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"time":      ap.Time,
		},
	})

	if uc.sender != nil && ap.User.TelegramID != 0 {
		local := ap.Time.In(uc.loc)
		text := fmt.Sprintf(cancelledText,
			ap.Salon.Name,
			local.Format(timezone.DateLayout),
			local.Format(timezone.TimeLayout),
		)
		if err := uc.sender.SendText(ctx, ap.User.TelegramID, text); err != nil {
			uc.logger.Warn("cancellation notice failed",
				"appointment_id", ap.ID,
				"chat_id", ap.User.TelegramID,
				"error", err,
			)
		}
	}

	return ap, nil
}
