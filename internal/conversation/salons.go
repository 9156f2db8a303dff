package conversation

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/barber-bot/internal/models"
)

func (c *Controller) listSalons(ctx context.Context, in Input) ([]Reply, error) {
	salons, err := c.repo.ListSalons(ctx)
	if err != nil {
		return nil, err
	}
	if len(salons) == 0 {
		return c.endFlow(ctx, in, msgNoSalons)
	}

	if err := c.save(ctx, in, Session{State: StateBrowsingSalons}); err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(msgChooseSalon, grid(salonNames(salons), true))}, nil
}

// salonDetails renders the salon card: phone, priced services, barbers that
// can still be booked and the map pin.
func (c *Controller) salonDetails(ctx context.Context, salon *models.Salon) ([]Reply, error) {
	services, err := c.repo.ListServicesBySalon(ctx, salon.ID)
	if err != nil {
		return nil, err
	}
	barbers, err := c.bookableBarbers(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	serviceLines := msgNoServices
	if len(services) > 0 {
		lines := make([]string, 0, len(services))
		for _, s := range services {
			lines = append(lines, fmt.Sprintf("- %s: %s", s.Name, formatPrice(s.Price)))
		}
		serviceLines = strings.Join(lines, "\n")
	}

	barberLines := msgNoBarbersFree
	if len(barbers) > 0 {
		lines := make([]string, 0, len(barbers))
		for _, b := range barbers {
			lines = append(lines, "- "+b.Name)
		}
		barberLines = strings.Join(lines, "\n")
	}

	replies := []Reply{{
		Text:     fmt.Sprintf(msgSalonCard, salon.Name, salon.Phone, serviceLines, barberLines),
		Keyboard: [][]string{{BtnBack}},
	}}
	if salon.HasLocation() {
		replies = append(replies, Reply{Location: &Location{
			Latitude:  salon.Latitude,
			Longitude: salon.Longitude,
		}})
	}
	return replies, nil
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
