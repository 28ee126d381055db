package service

import (
	"errors"
	"testing"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
)

func mcQuestion(correct string) *model.Question {
	return &model.Question{
		ID:            1,
		Type:          model.QuestionTypeMultipleChoice,
		Prompt:        "What does ++ do?",
		OptionA:       strPtr("increments"),
		OptionB:       strPtr("decrements"),
		OptionC:       strPtr("negates"),
		OptionD:       strPtr("nothing"),
		CorrectOption: strPtr(correct),
	}
}

func codeQuestion(solution string) *model.Question {
	return &model.Question{
		ID:           2,
		Type:         model.QuestionTypeOpenCode,
		Prompt:       "Print hello",
		CodeSolution: strPtr(solution),
	}
}

func TestEvaluateAnswer_MultipleChoice(t *testing.T) {
	tests := []struct {
		name     string
		question *model.Question
		selected []string
		want     bool
	}{
		{"exact match", mcQuestion("A"), []string{"A"}, true},
		{"wrong label", mcQuestion("A"), []string{"B"}, false},
		{"surrounding whitespace ignored", mcQuestion(" A "), []string{"A"}, true},
		{"interior whitespace ignored", mcQuestion("op tion"), []string{"option"}, true},
		{"case matters", mcQuestion("A"), []string{"a"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateAnswer(tt.question, Submission{SelectedOptions: tt.selected})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("verdict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateAnswer_InvalidSelections(t *testing.T) {
	tests := []struct {
		name     string
		selected []string
	}{
		{"no selection", nil},
		{"multiple selections", []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateAnswer(mcQuestion("A"), Submission{SelectedOptions: tt.selected})
			if got {
				t.Error("verdict should be false for an invalid submission")
			}
			if !errors.Is(err, common.ErrInvalidSubmission) {
				t.Errorf("error = %v, want ErrInvalidSubmission", err)
			}
		})
	}
}

func TestEvaluateAnswer_OpenCode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"exact match", `fmt.Println("hello")`, true},
		{"case insensitive", `FMT.Println("HELLO")`, true},
		{"surrounding whitespace trimmed", "  fmt.Println(\"hello\")\n", true},
		{"interior whitespace differs", `fmt.Println( "hello" )`, false},
		{"wrong answer", `fmt.Println("goodbye")`, false},
		{"empty text", "", false},
	}
	q := codeQuestion(`fmt.Println("hello")`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EvaluateAnswer(q, Submission{Text: tt.text})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("verdict = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateAnswer_MalformedQuestions(t *testing.T) {
	mc := mcQuestion("A")
	mc.CorrectOption = nil
	if _, err := EvaluateAnswer(mc, Submission{SelectedOptions: []string{"A"}}); !errors.Is(err, common.ErrInvalidQuestion) {
		t.Errorf("missing correct option: error = %v, want ErrInvalidQuestion", err)
	}

	code := codeQuestion("x")
	code.CodeSolution = nil
	if _, err := EvaluateAnswer(code, Submission{Text: "x"}); !errors.Is(err, common.ErrInvalidQuestion) {
		t.Errorf("missing solution: error = %v, want ErrInvalidQuestion", err)
	}

	unknown := &model.Question{ID: 3, Type: "essay", Prompt: "?"}
	if _, err := EvaluateAnswer(unknown, Submission{}); !errors.Is(err, common.ErrInvalidQuestion) {
		t.Errorf("unknown type: error = %v, want ErrInvalidQuestion", err)
	}
}
