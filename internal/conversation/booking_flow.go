package conversation

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/logging"
	"github.com/BruksfildServices01/barber-bot/internal/models"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
	"github.com/BruksfildServices01/barber-bot/internal/validators"
)

// Every step recomputes its choice set from storage before validating the
// input against it.

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (c *Controller) startBooking(ctx context.Context, in Input) ([]Reply, error) {
	salons, err := c.repo.ListSalons(ctx)
	if err != nil {
		return nil, err
	}
	if len(salons) == 0 {
		return c.endFlow(ctx, in, msgNoSalons)
	}

	if err := c.save(ctx, in, Session{State: StateAwaitingSalon}); err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(msgChooseSalon, grid(salonNames(salons), true))}, nil
}

func (c *Controller) chooseSalon(ctx context.Context, in Input, sess Session, txt string) ([]Reply, error) {
	salons, err := c.repo.ListSalons(ctx)
	if err != nil {
		return nil, err
	}

	var salon *models.Salon
	for i := range salons {
		if salons[i].Name == txt {
			salon = &salons[i]
			break
		}
	}
	if salon == nil {
		return []Reply{withKeyboard(msgSalonNotFound, grid(salonNames(salons), true))}, nil
	}

	barbers, err := c.bookableBarbers(ctx, salon.ID)
	if err != nil {
		return nil, err
	}
	if len(barbers) == 0 {
		return c.endFlow(ctx, in, msgNoFreeBarbers)
	}

	sess.SalonID = salon.ID
	sess.SalonName = salon.Name
	sess.State = StateAwaitingBarber
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(msgChooseBarber, grid(barberNames(barbers), true))}, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

// bookableBarbers are the salon's barbers with at least one free date in
// the booking window.
func (c *Controller) bookableBarbers(ctx context.Context, salonID uint) ([]models.Barber, error) {
	barbers, err := c.repo.ListBarbersBySalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Barber, 0, len(barbers))
	for _, b := range barbers {
		ok, err := c.availability.HasFreeDate(ctx, b.ID, c.opts.WindowDays)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (c *Controller) chooseBarber(ctx context.Context, in Input, sess Session, txt string) ([]Reply, error) {
	barbers, err := c.bookableBarbers(ctx, sess.SalonID)
	if err != nil {
		return nil, err
	}
	if len(barbers) == 0 {
		return c.endFlow(ctx, in, msgNoFreeBarbers)
	}

	var barber *models.Barber
	for i := range barbers {
		if barbers[i].Name == txt {
			barber = &barbers[i]
			break
		}
	}
	if barber == nil {
		return []Reply{withKeyboard(msgBarberNotFound, grid(barberNames(barbers), true))}, nil
	}

	services, err := c.repo.ListServicesForBarber(ctx, barber.ID)
	if err != nil {
		return nil, err
	}
	if len(services) == 0 {
		return []Reply{withKeyboard(msgBarberNoWork, grid(barberNames(barbers), true))}, nil
	}

	sess.BarberID = barber.ID
	sess.BarberName = barber.Name
	sess.State = StateAwaitingService
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(msgChooseService, grid(serviceNames(services), true))}, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (c *Controller) chooseService(ctx context.Context, in Input, sess Session, txt string) ([]Reply, error) {
	services, err := c.repo.ListServicesForBarber(ctx, sess.BarberID)
	if err != nil {
		return nil, err
	}

	var service *models.Service
	for i := range services {
		if services[i].Name == txt {
			service = &services[i]
			break
		}
	}
	if service == nil {
		return []Reply{withKeyboard(msgServiceNotFound, grid(serviceNames(services), true))}, nil
	}

	dates, err := c.freeDateLabels(ctx, sess.BarberID)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return []Reply{withKeyboard(
			fmt.Sprintf(msgNoFreeDays, sess.BarberName),
			grid(serviceNames(services), true),
		)}, nil
	}

	sess.ServiceID = service.ID
	sess.ServiceName = service.Name
	sess.State = StateAwaitingDate
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(msgChooseDate, grid(dates, true))}, nil
}

// --------------------------------------------------
// Date
// --------------------------------------------------

func (c *Controller) freeDateLabels(ctx context.Context, barberID uint) ([]string, error) {
	dates, err := c.availability.FreeDates(ctx, barberID, c.opts.WindowDays, c.availability.Today())
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(dates))
	for _, d := range dates {
		labels = append(labels, d.Format(timezone.DateLayout))
	}
	return labels, nil
}

func (c *Controller) freeSlots(ctx context.Context, barberID uint, date string) ([]string, error) {
	day, err := timezone.ParseDate(date, c.availability.Location())
	if err != nil {
		return []string{}, nil
	}
	return c.availability.FreeSlots(ctx, domain.AvailabilityInput{BarberID: barberID, Date: day})
}

func (c *Controller) chooseDate(ctx context.Context, in Input, sess Session, txt string) ([]Reply, error) {
	dates, err := c.freeDateLabels(ctx, sess.BarberID)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return c.endFlow(ctx, in, fmt.Sprintf(msgNoFreeDays, sess.BarberName))
	}
	if !contains(dates, txt) {
		return []Reply{withKeyboard(msgDateUnavailable, grid(dates, true))}, nil
	}

	slots, err := c.freeSlots(ctx, sess.BarberID, txt)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return []Reply{withKeyboard(msgDateUnavailable, grid(dates, true))}, nil
	}

	sess.Date = txt
	sess.State = StateAwaitingTime
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(fmt.Sprintf(msgChooseTime, txt), grid(slots, true))}, nil
}

// --------------------------------------------------
// Time
// --------------------------------------------------

func (c *Controller) chooseTime(ctx context.Context, in Input, sess Session, txt string) ([]Reply, error) {
	slots, err := c.freeSlots(ctx, sess.BarberID, sess.Date)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return c.reofferDates(ctx, in, sess, msgDateUnavailable)
	}
	if !contains(slots, txt) {
		return []Reply{withKeyboard(msgTimeUnavailable, grid(slots, true))}, nil
	}

	sess.Time = txt
	sess.State = StateAwaitingName
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{{Text: msgEnterName, RemoveKeyboard: true}}, nil
}

// reofferDates sends the user back to the date step, or ends the flow when
// no date is left.
func (c *Controller) reofferDates(ctx context.Context, in Input, sess Session, msg string) ([]Reply, error) {
	dates, err := c.freeDateLabels(ctx, sess.BarberID)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return c.endFlow(ctx, in, fmt.Sprintf(msgNoFreeDays, sess.BarberName))
	}

	sess.Date, sess.Time = "", ""
	sess.State = StateAwaitingDate
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(msg, grid(dates, true))}, nil
}

// --------------------------------------------------
// Contact
// --------------------------------------------------

func (c *Controller) enterName(ctx context.Context, in Input, sess Session, txt string) ([]Reply, error) {
	name, ok := validators.NormalizeName(txt)
	if !ok {
		return []Reply{text(msgEnterName)}, nil
	}

	sess.Name = name
	sess.State = StateAwaitingPhone
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{text(msgEnterPhone)}, nil
}

func (c *Controller) enterPhone(ctx context.Context, in Input, sess Session, txt string) ([]Reply, error) {
	phone, ok := validators.NormalizePhone(txt)
	if !ok {
		return []Reply{text(msgInvalidPhone)}, nil
	}

	sess.Phone = phone
	sess.State = StateAwaitingConfirmation
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{confirmPrompt(sess)}, nil
}

// --------------------------------------------------
// Confirmation
// --------------------------------------------------

func confirmPrompt(sess Session) Reply {
	summary := domain.Summary{
		Name:    sess.Name,
		Salon:   sess.SalonName,
		Barber:  sess.BarberName,
		Service: sess.ServiceName,
		Date:    sess.Date,
		Time:    sess.Time,
		Phone:   sess.Phone,
	}
	return Reply{Text: summary.Text(), Inline: confirmButtons()}
}

func (c *Controller) handleCallback(ctx context.Context, in Input) ([]Reply, error) {
	switch in.Callback {
	case ActionConfirmBooking:
		return c.confirm(ctx, in)
	case ActionCancelBooking:
		return c.cancel(ctx, in)
	}
	return []Reply{alert(msgUnknownAction)}, nil
}

func (c *Controller) confirm(ctx context.Context, in Input) ([]Reply, error) {
	sess, ok, err := c.store.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !ok || sess.State != StateAwaitingConfirmation {
		return []Reply{alert(msgBookingExpired), {DeleteMessageID: in.MessageID}}, nil
	}

	ap, err := c.booker.Execute(ctx, sess.bookingInput(in))
	logger := logging.FromContext(ctx, c.logger)

	switch {
	case err == nil:
		logger.Info("booking committed", "appointment_id", ap.ID, "barber_id", ap.BarberID)
		replies, err := c.endFlow(ctx, in, msgMainMenu)
		if err != nil {
			return nil, err
		}
		return append([]Reply{{DeleteMessageID: in.MessageID}}, replies...), nil

	case httperr.IsBusiness(err, domain.CodeSlotTaken):
		logger.Info("slot taken at confirmation", "barber_id", sess.BarberID, "date", sess.Date, "time", sess.Time)
		replies, err := c.reofferTimes(ctx, in, sess)
		if err != nil {
			return nil, err
		}
		return append([]Reply{alert(msgSlotTaken), {DeleteMessageID: in.MessageID}}, replies...), nil

	case domain.IsValidation(err):
		logger.Info("selection no longer valid", "code", httperr.Code(err))
		replies, err := c.endFlow(ctx, in, msgSelectionGone)
		if err != nil {
			return nil, err
		}
		return append([]Reply{{DeleteMessageID: in.MessageID}}, replies...), nil
	}

	// storage failure: keep the session so the user can confirm again
	logger.Error("booking commit failed", "error", err)
	return []Reply{alert(msgSomethingWrong)}, nil
}

func (c *Controller) reofferTimes(ctx context.Context, in Input, sess Session) ([]Reply, error) {
	slots, err := c.freeSlots(ctx, sess.BarberID, sess.Date)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return c.reofferDates(ctx, in, sess, msgChooseDate)
	}

	sess.Time = ""
	sess.State = StateAwaitingTime
	if err := c.save(ctx, in, sess); err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(fmt.Sprintf(msgChooseTime, sess.Date), grid(slots, true))}, nil
}

func (c *Controller) cancel(ctx context.Context, in Input) ([]Reply, error) {
	replies, err := c.endFlow(ctx, in, msgMainMenu)
	if err != nil {
		return nil, err
	}
	return append([]Reply{alert(msgBookingCancelled), {DeleteMessageID: in.MessageID}}, replies...), nil
}

// endFlow clears the session and shows the menu with msg.
func (c *Controller) endFlow(ctx context.Context, in Input, msg string) ([]Reply, error) {
	if err := c.store.Delete(ctx, in.UserID); err != nil {
		return nil, err
	}
	kb, err := c.menuFor(in.UserID)
	if err != nil {
		return nil, err
	}
	return []Reply{withKeyboard(msg, kb)}, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func salonNames(salons []models.Salon) []string {
	out := make([]string, 0, len(salons))
	for _, s := range salons {
		out = append(out, s.Name)
	}
	return out
}

func barberNames(barbers []models.Barber) []string {
	out := make([]string, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, b.Name)
	}
	return out
}

func serviceNames(services []models.Service) []string {
	out := make([]string, 0, len(services))
	for _, s := range services {
		out = append(out, s.Name)
	}
	return out
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
