package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) ListSalons(ctx context.Context) ([]models.Salon, error) {
	var salons []models.Salon
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&salons).Error; err != nil {
		return nil, err
	}
	return salons, nil
}

func (r *AppointmentGormRepository) GetSalonByName(
	ctx context.Context,
	name string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&salon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSalonNotFound
		}
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBarberNotFound
		}
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentGormRepository) ListBarbersBySalon(
	ctx context.Context,
	salonID uint,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *AppointmentGormRepository) ListBarbersWithTelegram(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("telegram_id <> 0").
		Order("id ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) ListServicesBySalon(
	ctx context.Context,
	salonID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *AppointmentGormRepository) ListServicesForBarber(
	ctx context.Context,
	barberID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Joins("JOIN barber_services ON barber_services.service_id = services.id").
		Where("barber_services.barber_id = ?", barberID).
		Order("barber_services.id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAvailabilityForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.BarberAvailability, error) {

	var slots []models.BarberAvailability
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND available_date >= ? AND available_date < ?",
			barberID, dateOnly(start), dateOnly(end),
		).
		Order("id ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Salon").
		Preload("Service").
		Where(
			"barber_id = ? AND starts_at >= ? AND starts_at < ?",
			barberID,
			start,
			end,
		).
		Order("starts_at ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]time.Time, error) {

	var times []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND starts_at >= ? AND starts_at < ?", barberID, start, end).
		Order("starts_at ASC").
		Pluck("starts_at", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

func (r *AppointmentGormRepository) CountAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND starts_at >= ? AND starts_at < ?", barberID, start, end).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// --------------------------------------------------
// User
// --------------------------------------------------

// EnsureUser creates the user on first contact. Stored name and phone are
// never overwritten; only empty fields are filled in.
func (r *AppointmentGormRepository) EnsureUser(
	ctx context.Context,
	profile domain.UserProfile,
) (*models.User, error) {

	var user models.User
	err := r.db.WithContext(ctx).
		Where("telegram_id = ?", profile.TelegramID).
		First(&user).Error

	if err == nil {
		updates := map[string]any{}
		if user.Name == "" && profile.Name != "" {
			updates["name"] = profile.Name
		}
		if user.Phone == "" && profile.Phone != "" {
			updates["phone"] = profile.Phone
		}
		if user.Username == "" && profile.Username != "" {
			updates["username"] = profile.Username
		}
		if len(updates) > 0 {
			if err := r.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{
		TelegramID: profile.TelegramID,
		Username:   profile.Username,
		Name:       profile.Name,
		Phone:      profile.Phone,
	}

	if err := r.db.WithContext(ctx).Create(&user).Error; err != nil {
		// lost a race against a concurrent first contact
		if httperr.IsUniqueViolation(err) {
			var existing models.User
			if err := r.db.WithContext(ctx).
				Where("telegram_id = ?", profile.TelegramID).
				First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}

	return &user, nil
}

func (r *AppointmentGormRepository) ListUsersWithTelegram(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("telegram_id <> 0").
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) AssertSlotFree(
	ctx context.Context,
	barberID uint,
	at time.Time,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND starts_at = ?", barberID, at).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return domain.ErrSlotTaken
	}

	return nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).
		Omit("User", "Salon", "Barber", "Service").
		Create(ap).Error
	if httperr.IsUniqueViolation(err) {
		return domain.ErrSlotTaken
	}
	return err
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Salon").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// dateOnly keeps the calendar day of t so the comparison against a DATE
// column does not depend on the session timezone.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
