package testfixtures

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

// Repository is an in-memory domain.Repository. Like the postgres schema it
// rejects a second appointment for the same barber and instant.
type Repository struct {
	mu sync.Mutex

	nextID uint

	salons       []models.Salon
	barbers      []models.Barber
	services     []models.Service
	links        []models.BarberService
	availability []models.BarberAvailability
	appointments []models.Appointment
	users        []models.User

	// CreateErr, when set, is returned by CreateAppointment instead of
	// persisting anything.
	CreateErr error
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) id() uint {
	r.nextID++
	return r.nextID
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *Repository) AddSalon(s models.Salon) models.Salon {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	r.salons = append(r.salons, s)
	return s
}

func (r *Repository) AddBarber(b models.Barber) models.Barber {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.id()
	r.barbers = append(r.barbers, b)
	return b
}

func (r *Repository) AddService(s models.Service) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = r.id()
	r.services = append(r.services, s)
	return s
}

func (r *Repository) Link(barberID, serviceID uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links = append(r.links, models.BarberService{ID: r.id(), BarberID: barberID, ServiceID: serviceID})
}

// AddAvailability declares one slot per clock value on the given YYYY-MM-DD day.
func (r *Repository) AddAvailability(barberID uint, day string, clocks ...string) {
	date, err := time.Parse(timezone.DateLayout, day)
	if err != nil {
		panic(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range clocks {
		r.availability = append(r.availability, models.BarberAvailability{
			ID:            r.id(),
			BarberID:      barberID,
			AvailableDate: date,
			FreeTime:      c,
		})
	}
}

func (r *Repository) AddUser(u models.User) models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.id()
	r.users = append(r.users, u)
	return u
}

// AddAppointment stores ap directly, bypassing the uniqueness check.
func (r *Repository) AddAppointment(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap.ID = r.id()
	r.appointments = append(r.appointments, ap)
	return ap
}

func (r *Repository) Appointments() []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Appointment(nil), r.appointments...)
}

func (r *Repository) Users() []models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.User(nil), r.users...)
}

// --------------------------------------------------
// domain.Repository
// --------------------------------------------------

func (r *Repository) ListSalons(ctx context.Context) ([]models.Salon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Salon(nil), r.salons...), nil
}

func (r *Repository) GetSalonByName(ctx context.Context, name string) (*models.Salon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.salons {
		if s.Name == name {
			s := s
			return &s, nil
		}
	}
	return nil, domain.ErrSalonNotFound
}

func (r *Repository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.barbers {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, domain.ErrBarberNotFound
}

func (r *Repository) ListBarbersBySalon(ctx context.Context, salonID uint) ([]models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Barber
	for _, b := range r.barbers {
		if b.SalonID == salonID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *Repository) ListBarbersWithTelegram(ctx context.Context) ([]models.Barber, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Barber
	for _, b := range r.barbers {
		if b.TelegramID != 0 {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *Repository) ListServicesBySalon(ctx context.Context, salonID uint) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Service
	for _, s := range r.services {
		if s.SalonID == salonID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *Repository) ListServicesForBarber(ctx context.Context, barberID uint) ([]models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Service
	for _, l := range r.links {
		if l.BarberID != barberID {
			continue
		}
		for _, s := range r.services {
			if s.ID == l.ServiceID {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

func (r *Repository) ListAvailabilityForDay(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.BarberAvailability, error) {

	from := start.Format(timezone.DateLayout)
	to := end.Format(timezone.DateLayout)

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BarberAvailability
	for _, a := range r.availability {
		day := a.AvailableDate.Format(timezone.DateLayout)
		if a.BarberID == barberID && day >= from && day < to {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *Repository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.BarberID != barberID || ap.Time.Before(start) || !ap.Time.Before(end) {
			continue
		}
		for _, s := range r.salons {
			if s.ID == ap.SalonID {
				ap.Salon = s
			}
		}
		for _, s := range r.services {
			if s.ID == ap.ServiceID {
				ap.Service = s
			}
		}
		out = append(out, ap)
	}
	return out, nil
}

func (r *Repository) ListBookedTimes(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]time.Time, error) {

	r.mu.Lock()
	defer r.mu.Unlock()
	var out []time.Time
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && !ap.Time.Before(start) && ap.Time.Before(end) {
			out = append(out, ap.Time)
		}
	}
	return out, nil
}

func (r *Repository) CountAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) (int64, error) {

	times, err := r.ListBookedTimes(ctx, barberID, start, end)
	return int64(len(times)), err
}

func (r *Repository) EnsureUser(ctx context.Context, profile domain.UserProfile) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		u := &r.users[i]
		if u.TelegramID != profile.TelegramID {
			continue
		}
		if u.Name == "" {
			u.Name = profile.Name
		}
		if u.Phone == "" {
			u.Phone = profile.Phone
		}
		if u.Username == "" {
			u.Username = profile.Username
		}
		out := *u
		return &out, nil
	}

	u := models.User{
		ID:         r.id(),
		TelegramID: profile.TelegramID,
		Username:   profile.Username,
		Name:       profile.Name,
		Phone:      profile.Phone,
	}
	r.users = append(r.users, u)
	return &u, nil
}

func (r *Repository) ListUsersWithTelegram(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.users {
		if u.TelegramID != 0 {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *Repository) AssertSlotFree(ctx context.Context, barberID uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken(barberID, at) {
		return domain.ErrSlotTaken
	}
	return nil
}

func (r *Repository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if r.taken(ap.BarberID, ap.Time) {
		return domain.ErrSlotTaken
	}
	ap.ID = r.id()
	r.appointments = append(r.appointments, *ap)
	return nil
}

func (r *Repository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ap := range r.appointments {
		if ap.ID != id {
			continue
		}
		for _, u := range r.users {
			if u.ID == ap.UserID {
				ap.User = u
			}
		}
		for _, s := range r.salons {
			if s.ID == ap.SalonID {
				ap.Salon = s
			}
		}
		for _, s := range r.services {
			if s.ID == ap.ServiceID {
				ap.Service = s
			}
		}
		return &ap, nil
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *Repository) DeleteAppointment(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ap := range r.appointments {
		if ap.ID == id {
			r.appointments = append(r.appointments[:i], r.appointments[i+1:]...)
			return nil
		}
	}
	return domain.ErrAppointmentNotFound
}

func (r *Repository) taken(barberID uint, at time.Time) bool {
	for _, ap := range r.appointments {
		if ap.BarberID == barberID && ap.Time.Equal(at) {
			return true
		}
	}
	return false
}

var _ domain.Repository = (*Repository)(nil)
