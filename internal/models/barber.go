package models

import "time"

type Barber struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	SalonID uint  `gorm:"index;not null" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"salon,omitempty"`

	Name string `gorm:"size:100;not null" json:"name"`
	// TelegramID receives booking notifications; zero means none registered.
	TelegramID int64 `json:"telegram_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
