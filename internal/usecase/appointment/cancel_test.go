package appointment

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/barber-bot/internal/audit"
	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/testfixtures"
)

func TestCancelAppointmentFreesSlotAndTellsCustomer(t *testing.T) {
	repo := testfixtures.NewRepository()
	seed := testfixtures.SeedAibek(repo)
	user := repo.AddUser(models.User{TelegramID: 100, Name: "Ali"})
	ap := repo.AddAppointment(models.Appointment{
		UserID: user.ID, BarberID: seed.Barber.ID, SalonID: seed.Salon.ID, ServiceID: seed.Service.ID,
		Time: at("2024-06-10", "12:00"), Name: "Ali", Phone: "+998901234567",
	})

	rec := &auditRecorder{}
	dispatcher := audit.NewDispatcher(rec, nil)
	sender := &textRecorder{}
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	availability := NewAvailability(repo, testfixtures.Tashkent, clock.NowFunc())

	actor := int64(1)
	uc := NewCancelAppointment(repo, dispatcher, sender, testfixtures.Tashkent, nil)
	if _, err := uc.Execute(context.Background(), &actor, ap.ID); err != nil {
		t.Fatal(err)
	}
	dispatcher.Close()

	if len(repo.Appointments()) != 0 {
		t.Fatal("appointment still stored")
	}
	slots, _ := availability.FreeSlots(context.Background(), domain.AvailabilityInput{BarberID: seed.Barber.ID, Date: day("2024-06-10")})
	if len(slots) != 2 {
		t.Fatalf("expected slot to be offered again, got %v", slots)
	}
	want := "Your booking at Aibek on 2024-06-10 at 12:00 was cancelled by the salon."
	if sender.sent[100] != want {
		t.Fatalf("unexpected notice %q", sender.sent[100])
	}
	if len(rec.actions) != 1 || rec.actions[0] != "appointment_cancelled" {
		t.Fatalf("unexpected audit %v", rec.actions)
	}
}

func TestCancelAppointmentUnknown(t *testing.T) {
	repo := testfixtures.NewRepository()
	uc := NewCancelAppointment(repo, nil, nil, testfixtures.Tashkent, nil)

	_, err := uc.Execute(context.Background(), nil, 42)
	if !httperr.IsBusiness(err, domain.CodeAppointmentNotFound) {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestCancelAppointmentKeepsGoingWhenNoticeFails(t *testing.T) {
	repo := testfixtures.NewRepository()
	seed := testfixtures.SeedAibek(repo)
	user := repo.AddUser(models.User{TelegramID: 100})
	ap := repo.AddAppointment(models.Appointment{
		UserID: user.ID, BarberID: seed.Barber.ID, SalonID: seed.Salon.ID,
		Time: at("2024-06-10", "12:00"),
	})

	sender := &textRecorder{fail: map[int64]bool{100: true}}
	uc := NewCancelAppointment(repo, nil, sender, testfixtures.Tashkent, nil)
	if _, err := uc.Execute(context.Background(), nil, ap.ID); err != nil {
		t.Fatalf("notice failure must not fail the cancel: %v", err)
	}
	if len(repo.Appointments()) != 0 {
		t.Fatal("appointment still stored")
	}
}
