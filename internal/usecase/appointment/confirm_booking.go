package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ConfirmBookingInput struct {
	TelegramUserID int64
	Username       string

	SalonID   uint
	BarberID  uint
	ServiceID uint

	SalonName   string
	BarberName  string
	ServiceName string

	Date string // 2006-01-02
	Time string // 15:04

	Name  string
	Phone string
}

func (in ConfirmBookingInput) Summary() domain.Summary {
	return domain.Summary{
		Name:    in.Name,
		Salon:   in.SalonName,
		Barber:  in.BarberName,
		Service: in.ServiceName,
		Date:    in.Date,
		Time:    in.Time,
		Phone:   in.Phone,
	}
}

// ======================================================
// COLLABORATORS
// ======================================================

// Notifier delivers the booking summary. Errors are logged, never returned
// to the customer.
type Notifier interface {
	NotifyBooking(ctx context.Context, notice domain.BookingNotice) error
}

// EventPublisher emits integration events such as booking.confirmed.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

const EventBookingConfirmed = "booking.confirmed"

type BookingConfirmedEvent struct {
	AppointmentID uint      `json:"appointment_id"`
	SalonID       uint      `json:"salon_id"`
	BarberID      uint      `json:"barber_id"`
	ServiceID     uint      `json:"service_id"`
	UserID        uint      `json:"user_id"`
	StartsAt      time.Time `json:"starts_at"`
}

// ======================================================
// USE CASE
// ======================================================

type ConfirmBooking struct {
	repo      domain.Repository
	audit     *audit.Dispatcher
	notifier  Notifier
	publisher EventPublisher
	loc       *time.Location
	logger    *slog.Logger
}

func NewConfirmBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier Notifier,
	publisher EventPublisher,
	loc *time.Location,
	logger *slog.Logger,
) *ConfirmBooking {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfirmBooking{
		repo:      repo,
		audit:     audit,
		notifier:  notifier,
		publisher: publisher,
		loc:       loc,
		logger:    logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	in ConfirmBookingInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Date + time of day in the salon timezone
	// --------------------------------------------------
	startsAt, err := timezone.Combine(in.Date, in.Time, uc.loc)
	if err != nil {
		return nil, domain.ErrInvalidDateOrTime
	}

	// --------------------------------------------------
	// 2️⃣ Barber belongs to the salon and does the service
	// --------------------------------------------------
	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if barber.SalonID != in.SalonID {
		return nil, domain.ErrBarberNotFound
	}

	services, err := uc.repo.ListServicesForBarber(ctx, barber.ID)
	if err != nil {
		return nil, err
	}
	if !containsService(services, in.ServiceID) {
		return nil, domain.ErrServiceNotFound
	}

	// --------------------------------------------------
	// 3️⃣ Customer (first write wins for name and phone)
	// --------------------------------------------------
	user, err := uc.repo.EnsureUser(ctx, domain.UserProfile{
		TelegramID: in.TelegramUserID,
		Username:   in.Username,
		Name:       in.Name,
		Phone:      in.Phone,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Slot still free
	// --------------------------------------------------
	if err := uc.repo.AssertSlotFree(ctx, barber.ID, startsAt); err != nil {
		uc.conflict(in, err)
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Persist; the (barber, time) index settles races
	// --------------------------------------------------
	ap := &models.Appointment{
		UserID:    user.ID,
		SalonID:   in.SalonID,
		BarberID:  barber.ID,
		ServiceID: in.ServiceID,
		Time:      startsAt,
		Name:      in.Name,
		Phone:     in.Phone,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		uc.conflict(in, err)
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Audit, event, notifications (best effort)
	// --------------------------------------------------
	actor := in.TelegramUserID
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	if uc.publisher != nil {
		if err := uc.publisher.PublishJSON(ctx, EventBookingConfirmed, BookingConfirmedEvent{
			AppointmentID: ap.ID,
			SalonID:       ap.SalonID,
			BarberID:      ap.BarberID,
			ServiceID:     ap.ServiceID,
			UserID:        ap.UserID,
			StartsAt:      ap.Time,
		}); err != nil {
			uc.logger.Warn("publish booking event failed", "appointment_id", ap.ID, "error", err)
		}
	}

	if uc.notifier != nil {
		notice := domain.BookingNotice{
			AppointmentID:  ap.ID,
			BarberChatID:   barber.TelegramID,
			CustomerChatID: in.TelegramUserID,
			CustomerPhone:  in.Phone,
			Summary:        in.Summary(),
		}
		if err := uc.notifier.NotifyBooking(ctx, notice); err != nil {
			uc.logger.Warn("booking notification failed", "appointment_id", ap.ID, "error", err)
		}
	}

	return ap, nil
}

func (uc *ConfirmBooking) conflict(in ConfirmBookingInput, err error) {
	if !domain.IsValidation(err) {
		return
	}
	actor := in.TelegramUserID
	uc.audit.Dispatch(audit.Event{
		ActorID: &actor,
		Action:  "appointment_conflict",
		Entity:  "appointment",
		Metadata: map[string]any{
			"barber_id": in.BarberID,
			"date":      in.Date,
			"time":      in.Time,
		},
	})
}

func containsService(services []models.Service, id uint) bool {
	for _, s := range services {
		if s.ID == id {
			return true
		}
	}
	return false
}
