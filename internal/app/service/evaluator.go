package service

import (
	"fmt"
	"strings"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
)

// Submission is one user answer to one question. Multiple-choice answers
// carry the selected option labels (exactly one is valid); open-code answers
// carry free text.
type Submission struct {
	SelectedOptions []string `json:"selected_options,omitempty"`
	Text            string   `json:"text,omitempty"`
}

// EvaluateAnswer decides the correctness of a submission.
//
// Multiple choice: the selected label must equal the stored correct option
// after stripping whitespace on both sides; comparison is case-sensitive on
// the label identity. Zero or more than one selection is an invalid
// submission: the verdict is false and a typed error is returned alongside.
//
// Open code: trimmed, lower-cased equality against the stored solution. No
// partial credit and no structural comparison; exact normalized match only.
func EvaluateAnswer(q *model.Question, sub Submission) (bool, error) {
	switch q.Type {
	case model.QuestionTypeMultipleChoice:
		if q.CorrectOption == nil {
			return false, fmt.Errorf("multiple-choice question %d has no correct option: %w", q.ID, common.ErrInvalidQuestion)
		}
		if len(sub.SelectedOptions) == 0 {
			return false, fmt.Errorf("no option selected: %w", common.ErrInvalidSubmission)
		}
		if len(sub.SelectedOptions) > 1 {
			return false, fmt.Errorf("more than one option selected: %w", common.ErrInvalidSubmission)
		}
		selected := stripWhitespace(sub.SelectedOptions[0])
		correct := stripWhitespace(*q.CorrectOption)
		return selected == correct, nil

	case model.QuestionTypeOpenCode:
		if q.CodeSolution == nil {
			return false, fmt.Errorf("open-code question %d has no solution: %w", q.ID, common.ErrInvalidQuestion)
		}
		given := strings.ToLower(strings.TrimSpace(sub.Text))
		want := strings.ToLower(strings.TrimSpace(*q.CodeSolution))
		return given == want, nil
	}
	return false, fmt.Errorf("unknown question type %q: %w", q.Type, common.ErrInvalidQuestion)
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
