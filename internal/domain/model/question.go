package model

import "time"

type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeOpenCode       QuestionType = "open_code"
)

// Option labels for multiple-choice questions. CorrectOption stores one of
// these identifiers, not the option's display text.
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

type Question struct {
	ID            int64        `json:"id"`
	LanguageID    int64        `json:"language_id"`
	ThemeID       int64        `json:"theme_id"`
	DifficultyID  int64        `json:"difficulty_id"`
	Type          QuestionType `json:"question_type"`
	Prompt        string       `json:"question"`
	OptionA       *string      `json:"option_a,omitempty"`
	OptionB       *string      `json:"option_b,omitempty"`
	OptionC       *string      `json:"option_c,omitempty"`
	OptionD       *string      `json:"option_d,omitempty"`
	CorrectOption *string      `json:"correct_option,omitempty"`
	CodeSolution  *string      `json:"code_solution,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Triple identifies one scoped question set: a language, theme and
// difficulty combination.
type Triple struct {
	LanguageID   int64 `json:"language_id"`
	ThemeID      int64 `json:"theme_id"`
	DifficultyID int64 `json:"difficulty_id"`
}
