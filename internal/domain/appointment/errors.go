package appointment

import "github.com/BruksfildServices01/barber-bot/internal/httperr"

const (
	CodeSlotTaken         = "slot_taken"
	CodeInvalidDateOrTime = "invalid_date_or_time"
	CodeBarberNotFound    = "barber_not_found"
	CodeSalonNotFound     = "salon_not_found"
	CodeServiceNotFound   = "service_not_found"

	CodeAppointmentNotFound = "appointment_not_found"
)

var (
	ErrSlotTaken         = httperr.ErrBusiness(CodeSlotTaken)
	ErrInvalidDateOrTime = httperr.ErrBusiness(CodeInvalidDateOrTime)
	ErrBarberNotFound    = httperr.ErrBusiness(CodeBarberNotFound)
	ErrSalonNotFound     = httperr.ErrBusiness(CodeSalonNotFound)
	ErrServiceNotFound   = httperr.ErrBusiness(CodeServiceNotFound)

	ErrAppointmentNotFound = httperr.ErrBusiness(CodeAppointmentNotFound)
)

// IsValidation reports whether err should send the user back to pick again.
func IsValidation(err error) bool {
	switch httperr.Code(err) {
	case CodeSlotTaken, CodeInvalidDateOrTime, CodeBarberNotFound,
		CodeSalonNotFound, CodeServiceNotFound:
		return true
	}
	return false
}
