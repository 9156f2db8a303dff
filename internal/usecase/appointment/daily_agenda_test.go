package appointment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/testfixtures"
)

type textRecorder struct {
	sent map[int64]string
	fail map[int64]bool
}

func (r *textRecorder) SendText(_ context.Context, chatID int64, text string) error {
	if r.fail[chatID] {
		return errors.New("forbidden")
	}
	if r.sent == nil {
		r.sent = map[int64]string{}
	}
	r.sent[chatID] = text
	return nil
}

func TestDailyAgendaSendsTomorrowToBarbers(t *testing.T) {
	repo := testfixtures.NewRepository()
	seed := testfixtures.SeedAibek(repo)
	idle := repo.AddBarber(models.Barber{SalonID: seed.Salon.ID, Name: "Bekzod", TelegramID: 7002})
	silent := repo.AddBarber(models.Barber{SalonID: seed.Salon.ID, Name: "Olim"})

	repo.AddAppointment(models.Appointment{
		BarberID: seed.Barber.ID, SalonID: seed.Salon.ID, ServiceID: seed.Service.ID,
		Time: at("2024-06-11", "13:00"), Name: "Ali", Phone: "+998901234567",
	})
	repo.AddAppointment(models.Appointment{
		BarberID: silent.ID, SalonID: seed.Salon.ID, ServiceID: seed.Service.ID,
		Time: at("2024-06-11", "10:00"), Name: "Vali", Phone: "+998907654321",
	})
	// today, not part of tomorrow's agenda
	repo.AddAppointment(models.Appointment{
		BarberID: seed.Barber.ID, Time: at("2024-06-10", "12:00"), Name: "Karim",
	})

	rec := &textRecorder{}
	clock := testfixtures.NewClock(time.Time{})
	uc := NewDailyAgenda(repo, rec, testfixtures.Tashkent, clock.NowFunc(), nil)

	n, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected one agenda, got %d", n)
	}

	text, ok := rec.sent[seed.Barber.TelegramID]
	if !ok {
		t.Fatal("Jasur did not receive the agenda")
	}
	for _, want := range []string{"2024-06-11", "13:00", "Ali", "Haircut"} {
		if !strings.Contains(text, want) {
			t.Errorf("agenda %q lacks %q", text, want)
		}
	}
	if strings.Contains(text, "Karim") {
		t.Error("agenda must only list tomorrow")
	}
	if _, ok := rec.sent[idle.TelegramID]; ok {
		t.Error("barber without bookings should not be messaged")
	}
}

func TestDailyAgendaContinuesAfterDeliveryFailure(t *testing.T) {
	repo := testfixtures.NewRepository()
	seed := testfixtures.SeedAibek(repo)
	other := repo.AddBarber(models.Barber{SalonID: seed.Salon.ID, Name: "Bekzod", TelegramID: 7002})
	for _, b := range []uint{seed.Barber.ID, other.ID} {
		repo.AddAppointment(models.Appointment{BarberID: b, Time: at("2024-06-11", "10:00"), Name: "Ali"})
	}

	rec := &textRecorder{fail: map[int64]bool{seed.Barber.TelegramID: true}}
	uc := NewDailyAgenda(repo, rec, testfixtures.Tashkent, testfixtures.NewClock(time.Time{}).NowFunc(), nil)

	n, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || rec.sent[other.TelegramID] == "" {
		t.Fatalf("expected delivery to continue past the failed barber, sent=%d", n)
	}
}
