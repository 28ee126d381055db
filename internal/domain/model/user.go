package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Not exposed
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	TelegramID     string    `json:"telegram_id"`
	Role           string    `json:"role"`
	ResetRequired  bool      `json:"reset_required"`
	CreatedAt      time.Time `json:"created_at"`
}
