package models

import "time"

type Salon struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Name      string  `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Phone     string  `gorm:"size:20" json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Salon) HasLocation() bool {
	return s.Latitude != 0 || s.Longitude != 0
}
