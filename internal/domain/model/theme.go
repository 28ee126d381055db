package model

import "time"

type Theme struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"` // case-normalized name, unique
	CreatedAt time.Time `json:"created_at"`
}
