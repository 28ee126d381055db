package model

import "time"

// Difficulty is one tier of the unlock ladder. Level is unique and strictly
// ordered but not necessarily contiguous; "next tier" means the smallest
// level strictly greater than the current one.
type Difficulty struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}
