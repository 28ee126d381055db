package model

import "time"

// Progress accumulates score for one user on one triple. At most one row
// exists per (UserID, ThemeID, LanguageID, DifficultyID); repeated passes add
// to Score.
type Progress struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ThemeID      int64     `json:"theme_id"`
	LanguageID   int64     `json:"language_id"`
	DifficultyID int64     `json:"difficulty_id"`
	Score        int       `json:"score"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompletionStat holds the raw counts a completion percentage is derived
// from, keyed by a dimension value (language, theme or difficulty id).
type CompletionStat struct {
	TotalQuestions int `json:"total_questions"`
	CorrectAnswers int `json:"correct_answers"`
}

// Percentage returns 100 * correct / total, or 0 when the dimension holds no
// questions.
func (s CompletionStat) Percentage() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) * 100.0 / float64(s.TotalQuestions)
}
