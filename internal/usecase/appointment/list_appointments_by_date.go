package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/dto"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByDate {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	return &ListAppointmentsByDate{
		repo: repo,
		loc:  loc,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	start := timezone.StartOfDay(date, uc.loc)
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		barberID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			Time:        ap.Time,
			Clock:       ap.Time.In(uc.loc).Format(timezone.TimeLayout),
			Name:        ap.Name,
			Phone:       ap.Phone,
			SalonName:   ap.Salon.Name,
			ServiceName: ap.Service.Name,
		})
	}

	return out, nil
}
