package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-bot/internal/models"
)

// UserProfile is what the bot knows about a customer at a given moment.
type UserProfile struct {
	TelegramID int64
	Username   string
	Name       string
	Phone      string
}

type Repository interface {
	// -------- Salon --------
	ListSalons(ctx context.Context) ([]models.Salon, error)

	GetSalonByName(
		ctx context.Context,
		name string,
	) (*models.Salon, error)

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	ListBarbersBySalon(
		ctx context.Context,
		salonID uint,
	) ([]models.Barber, error)

	ListBarbersWithTelegram(ctx context.Context) ([]models.Barber, error)

	// -------- Service --------
	ListServicesBySalon(
		ctx context.Context,
		salonID uint,
	) ([]models.Service, error)

	ListServicesForBarber(
		ctx context.Context,
		barberID uint,
	) ([]models.Service, error)

	// -------- Availability --------
	// ListAvailabilityForDay returns slots declared in [start, end) in
	// declaration order.
	ListAvailabilityForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.BarberAvailability, error)

	// ListAppointmentsForPeriod loads full rows with salon and service for
	// listings; the resolver uses the lean queries below.
	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListBookedTimes(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]time.Time, error)

	CountAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) (int64, error)

	// -------- User --------
	EnsureUser(
		ctx context.Context,
		profile UserProfile,
	) (*models.User, error)

	ListUsersWithTelegram(ctx context.Context) ([]models.User, error)

	// -------- Appointment (create / conflict) --------
	AssertSlotFree(
		ctx context.Context,
		barberID uint,
		at time.Time,
	) error

	// CreateAppointment returns ErrSlotTaken when the (barber, time) pair is
	// already booked.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (admin) --------
	// GetAppointment preloads the customer, salon and service.
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error
}
