package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-bot/internal/dto"
	"github.com/BruksfildServices01/barber-bot/internal/httperr"
	"github.com/BruksfildServices01/barber-bot/internal/httpresp"
	"github.com/BruksfildServices01/barber-bot/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentsByDate interface {
	Execute(ctx context.Context, barberID uint, date time.Time) ([]dto.AppointmentListDTO, error)
}

type AppointmentsByMonth interface {
	Execute(ctx context.Context, barberID uint, year int, month time.Month) ([]dto.AppointmentDayDTO, error)
}

type AppointmentCanceller interface {
	Execute(ctx context.Context, actorID *int64, appointmentID uint) (*models.Appointment, error)
}

type AppointmentHandler struct {
	listByDate  AppointmentsByDate
	listByMonth AppointmentsByMonth
	cancel      AppointmentCanceller
	loc         *time.Location
}

func NewAppointmentHandler(
	listByDate AppointmentsByDate,
	listByMonth AppointmentsByMonth,
	cancel AppointmentCanceller,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		listByDate:  listByDate,
		listByMonth: listByMonth,
		cancel:      cancel,
		loc:         loc,
	}
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID, ok := uintQuery(c, "barber_id")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id is required.")
		return
	}

	if c.Query("date") == "" {
		httperr.BadRequest(c, "missing_date", "date is required.")
		return
	}
	date, ok := dateQuery(c, "date", h.loc)
	if !ok {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	items, err := h.listByDate.Execute(c.Request.Context(), barberID, date)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID, ok := uintQuery(c, "barber_id")
	if !ok {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id is required.")
		return
	}

	month, err := time.ParseInLocation("2006-01", c.Query("month"), h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "month must be YYYY-MM.")
		return
	}

	days, err := h.listByMonth.Execute(c.Request.Context(), barberID, month.Year(), month.Month())
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.List(c, days)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), actorID(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        ap.ID,
		"cancelled": true,
	})
}

func (h *AppointmentHandler) writeError(c *gin.Context, err error) {
	switch code := httperr.Code(err); code {
	case domain.CodeBarberNotFound:
		httperr.NotFound(c, code, "Barber not found.")
	case domain.CodeAppointmentNotFound:
		httperr.NotFound(c, code, "Appointment not found.")
	default:
		httperr.Internal(c, "appointments_failed", "Could not load appointments.")
	}
}
