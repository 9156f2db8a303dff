package testfixtures

import "github.com/BruksfildServices01/barber-bot/internal/models"

// Aibek is the reference catalog: salon "Aibek" with barber "Jasur" who
// performs "Haircut" for 5 and offers 12:00 and 13:00 on 2024-06-10.
type Aibek struct {
	Salon   models.Salon
	Barber  models.Barber
	Service models.Service
}

// SeedAibek loads the reference catalog into repo.
func SeedAibek(repo *Repository) Aibek {
	salon := repo.AddSalon(models.Salon{
		Name:      "Aibek",
		Phone:     "+998712000000",
		Latitude:  41.311081,
		Longitude: 69.240562,
	})
	barber := repo.AddBarber(models.Barber{
		SalonID:    salon.ID,
		Name:       "Jasur",
		TelegramID: 7001,
	})
	service := repo.AddService(models.Service{
		SalonID: salon.ID,
		Name:    "Haircut",
		Price:   5,
	})
	repo.Link(barber.ID, service.ID)
	repo.AddAvailability(barber.ID, "2024-06-10", "12:00", "13:00")

	return Aibek{Salon: salon, Barber: barber, Service: service}
}
