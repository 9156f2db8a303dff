package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/httpresp"
	"github.com/BruksfildServices01/barber-bot/internal/timezone"
)

type AvailabilityReader interface {
	FreeSlots(ctx context.Context, in domain.AvailabilityInput) ([]string, error)
	FreeDates(ctx context.Context, barberID uint, windowDays int, from time.Time) ([]time.Time, error)
	Location() *time.Location
	Today() time.Time
}

type AvailabilityHandler struct {
	availability AvailabilityReader
	windowDays   int
}

func NewAvailabilityHandler(availability AvailabilityReader, windowDays int) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, windowDays: windowDays}
}

// FreeDates lists the bookable days of the window starting today.
func (h *AvailabilityHandler) FreeDates(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	dates, err := h.availability.FreeDates(c.Request.Context(), barberID, h.windowDays, h.availability.Today())
	if err != nil {
		httperr.Internal(c, "availability_failed", "Could not compute free dates.")
		return
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format(timezone.DateLayout))
	}
	httpresp.List(c, out)
}

func (h *AvailabilityHandler) FreeSlots(c *gin.Context) {
	barberID, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	date, ok := dateQuery(c, "date", h.availability.Location())
	if !ok {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	slots, err := h.availability.FreeSlots(c.Request.Context(), domain.AvailabilityInput{
		BarberID: barberID,
		Date:     date,
	})
	if err != nil {
		httperr.Internal(c, "availability_failed", "Could not compute free slots.")
		return
	}

	httpresp.List(c, slots)
}
