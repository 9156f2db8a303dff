package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/dto"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByMonth {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	return &ListAppointmentsByMonth{
		repo: repo,
		loc:  loc,
	}
}

// Execute groups the barber's bookings of one calendar month by day.
func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	year int,
	month time.Month,
) ([]dto.AppointmentDayDTO, error) {

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, uc.loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barberID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		return appointments[i].Time.Before(appointments[j].Time)
	})

	out := make([]dto.AppointmentDayDTO, 0)
	for _, ap := range appointments {
		local := ap.Time.In(uc.loc)
		date := local.Format(timezone.DateLayout)

		if len(out) == 0 || out[len(out)-1].Date != date {
			out = append(out, dto.AppointmentDayDTO{Date: date})
		}
		day := &out[len(out)-1]
		day.Count++
		day.Clocks = append(day.Clocks, local.Format(timezone.TimeLayout))
	}

	return out, nil
}
