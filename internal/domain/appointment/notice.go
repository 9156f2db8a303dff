package appointment

// BookingNotice is everything needed to tell the barber and the customer
// about a committed booking.
type BookingNotice struct {
	AppointmentID uint

	// BarberChatID is zero when the barber has no messaging identity.
	BarberChatID   int64
	CustomerChatID int64
	CustomerPhone  string

	Summary Summary
}
