package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

// Availability answers which slots and days a barber can still be booked
// for. Every call re-reads storage.
type Availability struct {
	repo domain.Repository
	loc  *time.Location
	now  func() time.Time
}

func NewAvailability(
	repo domain.Repository,
	loc *time.Location,
	now func() time.Time,
) *Availability {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	if now == nil {
		now = time.Now
	}
	return &Availability{repo: repo, loc: loc, now: now}
}

func (uc *Availability) Location() *time.Location {
	return uc.loc
}

// Today is midnight of the current day in the salon timezone.
func (uc *Availability) Today() time.Time {
	return timezone.StartOfDay(uc.now(), uc.loc)
}

// FreeSlots returns the declared "HH:MM" slots of the day that no
// appointment of the barber occupies, in declaration order. An unknown
// barber yields an empty result.
func (uc *Availability) FreeSlots(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		if httperr.IsBusiness(err, domain.CodeBarberNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	dayStart := timezone.StartOfDay(in.Date, uc.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	declared, err := uc.repo.ListAvailabilityForDay(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if len(declared) == 0 {
		return []string{}, nil
	}

	times, err := uc.repo.ListBookedTimes(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]struct{}, len(times))
	for _, t := range times {
		booked[t.In(uc.loc).Format(timezone.TimeLayout)] = struct{}{}
	}

	free := make([]string, 0, len(declared))
	for _, slot := range declared {
		hm, ok := normalizeClock(slot.FreeTime)
		if !ok {
			continue
		}
		if _, taken := booked[hm]; taken {
			continue
		}
		free = append(free, hm)
	}

	return free, nil
}

// FreeDates walks windowDays calendar days starting at from's day. A day is
// offered only when the barber declared at least one slot for it and has no
// appointment at all that day.
func (uc *Availability) FreeDates(
	ctx context.Context,
	barberID uint,
	windowDays int,
	from time.Time,
) ([]time.Time, error) {

	if windowDays <= 0 {
		windowDays = domain.DefaultWindowDays
	}
	if from.IsZero() {
		from = uc.now()
	}

	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		if httperr.IsBusiness(err, domain.CodeBarberNotFound) {
			return []time.Time{}, nil
		}
		return nil, err
	}

	first := timezone.StartOfDay(from, uc.loc)
	dates := make([]time.Time, 0, windowDays)

	for i := 0; i < windowDays; i++ {
		dayStart := first.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		declared, err := uc.repo.ListAvailabilityForDay(ctx, barberID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if len(declared) == 0 {
			continue
		}

		booked, err := uc.repo.CountAppointmentsForPeriod(ctx, barberID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		if booked > 0 {
			continue
		}

		dates = append(dates, dayStart)
	}

	return dates, nil
}

// HasFreeDate reports whether the barber can be offered at all from today.
func (uc *Availability) HasFreeDate(
	ctx context.Context,
	barberID uint,
	windowDays int,
) (bool, error) {
	dates, err := uc.FreeDates(ctx, barberID, windowDays, uc.now())
	if err != nil {
		return false, err
	}
	return len(dates) > 0, nil
}

// normalizeClock accepts "9:00", "09:00" and "09:00:00" and returns "09:00".
func normalizeClock(s string) (string, bool) {
	for _, layout := range []string{timezone.TimeLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(timezone.TimeLayout), true
		}
	}
	return "", false
}
