package models

import "time"

// User is a bot customer identified by their Telegram id.
type User struct {
	ID         uint  `gorm:"primaryKey" json:"id"`
	TelegramID int64 `gorm:"uniqueIndex;not null" json:"telegram_id"`

	Username string `gorm:"size:255" json:"username"`
	Name     string `gorm:"size:100" json:"name"`
	Phone    string `gorm:"size:20" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
