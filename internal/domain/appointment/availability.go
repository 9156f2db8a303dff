package appointment

import "time"

// DefaultWindowDays is how many calendar days, today included, are offered.
const DefaultWindowDays = 6

type AvailabilityInput struct {
	BarberID uint
	Date     time.Time
}
