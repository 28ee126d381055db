package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/repository"
)

// AnswerService evaluates submissions and records the verdict. Every
// evaluation upserts exactly one answer row keyed by (user, question).
type AnswerService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
}

func NewAnswerService(questionRepo repository.QuestionRepository, answerRepo repository.AnswerRepository) *AnswerService {
	return &AnswerService{questionRepo: questionRepo, answerRepo: answerRepo}
}

// Submit evaluates a submission against a question and records the verdict.
// An invalid submission (zero or multiple selections) is recorded as
// incorrect and the typed error is returned alongside the false verdict, so
// the caller can distinguish "wrong" from "malformed".
func (s *AnswerService) Submit(ctx context.Context, userID, questionID int64, sub Submission) (bool, error) {
	question, err := s.questionRepo.FindByID(ctx, questionID)
	if err != nil {
		return false, fmt.Errorf("question lookup: %w", err)
	}

	verdict, evalErr := EvaluateAnswer(question, sub)
	if evalErr != nil && !errors.Is(evalErr, common.ErrInvalidSubmission) {
		return false, evalErr
	}

	if err := s.answerRepo.Upsert(ctx, userID, questionID, verdict); err != nil {
		return false, fmt.Errorf("answer upsert: %w", err)
	}
	return verdict, evalErr
}
