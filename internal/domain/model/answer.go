package model

import "time"

// Answer is the latest verdict for one user on one question. At most one row
// exists per (UserID, QuestionID); re-answering overwrites IsCorrect.
type Answer struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	QuestionID int64     `json:"question_id"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}
