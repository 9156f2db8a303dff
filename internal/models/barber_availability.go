package models

import "time"

// BarberAvailability declares one offerable slot. It says nothing about
// whether the slot is booked.
type BarberAvailability struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"index:idx_availability_day;not null" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"barber,omitempty"`

	AvailableDate time.Time `gorm:"type:date;index:idx_availability_day;not null" json:"available_date"`
	FreeTime      string    `gorm:"size:5;not null" json:"free_time"` // HH:MM

	CreatedAt time.Time `json:"created_at"`
}
