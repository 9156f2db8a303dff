package appointment

import (
	"context"
	"testing"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/testfixtures"
)

func TestListAppointmentsByDate(t *testing.T) {
	repo := testfixtures.NewRepository()
	seed := testfixtures.SeedAibek(repo)
	repo.AddAppointment(models.Appointment{
		BarberID: seed.Barber.ID, SalonID: seed.Salon.ID, ServiceID: seed.Service.ID,
		Time: at("2024-06-10", "12:00"), Name: "Ali", Phone: "+998901234567",
	})
	repo.AddAppointment(models.Appointment{
		BarberID: seed.Barber.ID, Time: at("2024-06-11", "12:00"), Name: "Vali",
	})

	uc := NewListAppointmentsByDate(repo, testfixtures.Tashkent)
	out, err := uc.Execute(context.Background(), seed.Barber.ID, day("2024-06-10"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one appointment, got %d", len(out))
	}
	if out[0].Clock != "12:00" || out[0].SalonName != "Aibek" || out[0].ServiceName != "Haircut" {
		t.Fatalf("unexpected row %+v", out[0])
	}

	_, err = uc.Execute(context.Background(), 9999, day("2024-06-10"))
	if !httperr.IsBusiness(err, domain.CodeBarberNotFound) {
		t.Fatalf("expected barber_not_found, got %v", err)
	}
}
