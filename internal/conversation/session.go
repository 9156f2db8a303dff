package conversation

import (
	"time"

	ucAppointment "github.com/BruksfildServices01/barber-bot/internal/usecase/appointment"
)

type State string

const (
	StateIdle                 State = ""
	StateBrowsingSalons       State = "browsing_salons"
	StateAwaitingSalon        State = "awaiting_salon"
	StateAwaitingBarber       State = "awaiting_barber"
	StateAwaitingService      State = "awaiting_service"
	StateAwaitingDate         State = "awaiting_date"
	StateAwaitingTime         State = "awaiting_time"
	StateAwaitingName         State = "awaiting_name"
	StateAwaitingPhone        State = "awaiting_phone"
	StateAwaitingConfirmation State = "awaiting_confirmation"

	StateAwaitingAdPhoto   State = "awaiting_ad_photo"
	StateAwaitingAdCaption State = "awaiting_ad_caption"
)

// Session is the transient per-user state of a conversation. It is lost
// on restart when the memory store is used.
type Session struct {
	State State `json:"state"`

	SalonID     uint   `json:"salon_id,omitempty"`
	SalonName   string `json:"salon_name,omitempty"`
	BarberID    uint   `json:"barber_id,omitempty"`
	BarberName  string `json:"barber_name,omitempty"`
	ServiceID   uint   `json:"service_id,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`

	AdPhotoID string `json:"ad_photo_id,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (s Session) bookingInput(in Input) ucAppointment.ConfirmBookingInput {
	return ucAppointment.ConfirmBookingInput{
		TelegramUserID: in.UserID,
		Username:       in.Username,
		SalonID:        s.SalonID,
		BarberID:       s.BarberID,
		ServiceID:      s.ServiceID,
		SalonName:      s.SalonName,
		BarberName:     s.BarberName,
		ServiceName:    s.ServiceName,
		Date:           s.Date,
		Time:           s.Time,
		Name:           s.Name,
		Phone:          s.Phone,
	}
}
