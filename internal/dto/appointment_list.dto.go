package dto

import "time"

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	Time        time.Time `json:"time"`
	Clock       string    `json:"clock"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	SalonName   string    `json:"salon_name"`
	ServiceName string    `json:"service_name"`
}

type AppointmentDayDTO struct {
	Date   string   `json:"date"`
	Count  int      `json:"count"`
	Clocks []string `json:"clocks"`
}
