package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/barber-bot/internal/db"
	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/models"
)

var tashkent = time.FixedZone("Asia/Tashkent", 5*60*60)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "barber.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := dbpkg.Migrate(gdb); err != nil {
		t.Fatal(err)
	}
	return gdb
}

func mustCreate(t *testing.T, gdb *gorm.DB, v any) {
	t.Helper()
	if err := gdb.Omit(clause.Associations).Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

type catalog struct {
	salon   models.Salon
	barber  models.Barber
	haircut models.Service
	shave   models.Service
	user    models.User
}

func seedCatalog(t *testing.T, gdb *gorm.DB) catalog {
	t.Helper()
	c := catalog{
		salon: models.Salon{Name: "Aibek", Phone: "+998712000000"},
	}
	mustCreate(t, gdb, &c.salon)

	c.barber = models.Barber{SalonID: c.salon.ID, Name: "Jasur", TelegramID: 7001}
	mustCreate(t, gdb, &c.barber)
	mustCreate(t, gdb, &models.Barber{SalonID: c.salon.ID, Name: "Timur"})

	c.haircut = models.Service{SalonID: c.salon.ID, Name: "Haircut", Price: 5}
	c.shave = models.Service{SalonID: c.salon.ID, Name: "Shave", Price: 3}
	mustCreate(t, gdb, &c.haircut)
	mustCreate(t, gdb, &c.shave)

	// linked shave first: listing follows link order, not service id
	mustCreate(t, gdb, &models.BarberService{BarberID: c.barber.ID, ServiceID: c.shave.ID})
	mustCreate(t, gdb, &models.BarberService{BarberID: c.barber.ID, ServiceID: c.haircut.ID})

	c.user = models.User{TelegramID: 100, Name: "Ali", Phone: "+998901234567"}
	mustCreate(t, gdb, &c.user)
	return c
}

func (c catalog) appointment(at time.Time) *models.Appointment {
	return &models.Appointment{
		UserID:    c.user.ID,
		SalonID:   c.salon.ID,
		BarberID:  c.barber.ID,
		ServiceID: c.haircut.ID,
		Time:      at,
		Name:      "Ali",
		Phone:     "+998901234567",
	}
}

func TestCatalogQueries(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	c := seedCatalog(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	salon, err := repo.GetSalonByName(ctx, "Aibek")
	if err != nil || salon.ID != c.salon.ID {
		t.Fatalf("GetSalonByName = %+v, %v", salon, err)
	}
	if _, err := repo.GetSalonByName(ctx, "Nowhere"); !httperr.IsBusiness(err, domain.CodeSalonNotFound) {
		t.Fatalf("expected salon_not_found, got %v", err)
	}
	if _, err := repo.GetBarber(ctx, 999); !httperr.IsBusiness(err, domain.CodeBarberNotFound) {
		t.Fatalf("expected barber_not_found, got %v", err)
	}

	barbers, err := repo.ListBarbersBySalon(ctx, c.salon.ID)
	if err != nil || len(barbers) != 2 {
		t.Fatalf("ListBarbersBySalon = %d, %v", len(barbers), err)
	}
	withTelegram, err := repo.ListBarbersWithTelegram(ctx)
	if err != nil || len(withTelegram) != 1 || withTelegram[0].Name != "Jasur" {
		t.Fatalf("ListBarbersWithTelegram = %+v, %v", withTelegram, err)
	}

	services, err := repo.ListServicesForBarber(ctx, c.barber.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(services) != 2 || services[0].Name != "Shave" || services[1].Name != "Haircut" {
		t.Fatalf("unexpected services %+v", services)
	}
}

func TestListAvailabilityForDayKeepsCalendarDay(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	c := seedCatalog(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	june10 := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	for _, row := range []models.BarberAvailability{
		{BarberID: c.barber.ID, AvailableDate: june10, FreeTime: "13:00"},
		{BarberID: c.barber.ID, AvailableDate: june10, FreeTime: "12:00"},
		{BarberID: c.barber.ID, AvailableDate: june10.AddDate(0, 0, 1), FreeTime: "10:00"},
		{BarberID: c.barber.ID, AvailableDate: june10.AddDate(0, 0, -1), FreeTime: "18:00"},
	} {
		mustCreate(t, gdb, &row)
	}

	// local midnight in Tashkent is still the 9th in UTC
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, tashkent)
	slots, err := repo.ListAvailabilityForDay(ctx, c.barber.ID, start, start.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(slots) != 2 || slots[0].FreeTime != "13:00" || slots[1].FreeTime != "12:00" {
		t.Fatalf("expected the 10th in declaration order, got %+v", slots)
	}
}

func TestAppointmentsForPeriod(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	c := seedCatalog(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	day := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{
		day.Add(13 * time.Hour),
		day.Add(12 * time.Hour),
		day.Add(36 * time.Hour),
	} {
		if err := repo.CreateAppointment(ctx, c.appointment(at)); err != nil {
			t.Fatal(err)
		}
	}
	end := day.AddDate(0, 0, 1)

	apps, err := repo.ListAppointmentsForPeriod(ctx, c.barber.ID, day, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 || !apps[0].Time.Equal(day.Add(12*time.Hour)) {
		t.Fatalf("expected two appointments ordered by time, got %+v", apps)
	}
	if apps[0].Salon.Name != "Aibek" || apps[0].Service.Name != "Haircut" {
		t.Fatalf("expected salon and service preloaded, got %+v", apps[0])
	}

	times, err := repo.ListBookedTimes(ctx, c.barber.ID, day, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(times) != 2 || !times[1].Equal(day.Add(13*time.Hour)) {
		t.Fatalf("unexpected booked times %v", times)
	}

	count, err := repo.CountAppointmentsForPeriod(ctx, c.barber.ID, day, end)
	if err != nil || count != 2 {
		t.Fatalf("CountAppointmentsForPeriod = %d, %v", count, err)
	}
}

func TestSlotCanOnlyBeBookedOnce(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	c := seedCatalog(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	at := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	if err := repo.AssertSlotFree(ctx, c.barber.ID, at); err != nil {
		t.Fatalf("fresh slot reported taken: %v", err)
	}
	if err := repo.CreateAppointment(ctx, c.appointment(at)); err != nil {
		t.Fatal(err)
	}

	if err := repo.AssertSlotFree(ctx, c.barber.ID, at); !httperr.IsBusiness(err, domain.CodeSlotTaken) {
		t.Fatalf("expected slot_taken, got %v", err)
	}
	if err := repo.CreateAppointment(ctx, c.appointment(at)); err == nil {
		t.Fatal("unique index must reject a second booking of the same slot")
	}

	var count int64
	gdb.Model(&models.Appointment{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one appointment, got %d", count)
	}
}

func TestEnsureUserFillsOnlyEmptyFields(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	repo := NewAppointmentGormRepository(gdb)

	first, err := repo.EnsureUser(ctx, domain.UserProfile{TelegramID: 555, Username: "ali", Name: "Ali"})
	if err != nil {
		t.Fatal(err)
	}

	again, err := repo.EnsureUser(ctx, domain.UserProfile{
		TelegramID: 555,
		Username:   "other",
		Name:       "Bob",
		Phone:      "+998901234567",
	})
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != first.ID {
		t.Fatalf("expected the same user, got %d and %d", first.ID, again.ID)
	}

	var stored models.User
	if err := gdb.First(&stored, first.ID).Error; err != nil {
		t.Fatal(err)
	}
	if stored.Name != "Ali" || stored.Username != "ali" || stored.Phone != "+998901234567" {
		t.Fatalf("unexpected stored user %+v", stored)
	}

	users, err := repo.ListUsersWithTelegram(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("ListUsersWithTelegram = %d, %v", len(users), err)
	}
}

func TestGetAndDeleteAppointment(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	c := seedCatalog(t, gdb)
	repo := NewAppointmentGormRepository(gdb)

	ap := c.appointment(time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC))
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.User.TelegramID != 100 || got.Salon.Name != "Aibek" || got.Service.Name != "Haircut" {
		t.Fatalf("expected preloaded relations, got %+v", got)
	}

	if err := repo.DeleteAppointment(ctx, ap.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.DeleteAppointment(ctx, ap.ID); !httperr.IsBusiness(err, domain.CodeAppointmentNotFound) {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
	if _, err := repo.GetAppointment(ctx, ap.ID); !httperr.IsBusiness(err, domain.CodeAppointmentNotFound) {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestUpsertAdminReplacesHash(t *testing.T) {
	ctx := context.Background()
	gdb := newTestDB(t)
	admins := NewAdminGormRepository(gdb)

	if _, err := admins.UpsertAdmin(ctx, "root", "hash-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := admins.UpsertAdmin(ctx, "root", "hash-2"); err != nil {
		t.Fatal(err)
	}

	admin, err := admins.FindAdminByUsername(ctx, "root")
	if err != nil || admin.PasswordHash != "hash-2" {
		t.Fatalf("FindAdminByUsername = %+v, %v", admin, err)
	}
	if _, err := admins.FindAdminByUsername(ctx, "nobody"); !errors.Is(err, ErrAdminNotFound) {
		t.Fatalf("expected ErrAdminNotFound, got %v", err)
	}

	var count int64
	gdb.Model(&models.AdminUser{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one admin row, got %d", count)
	}
}
