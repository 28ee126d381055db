package service

import (
	"context"
	"fmt"

	"github.com/heppy363/Play/internal/domain/repository"
)

// ProgressService reconstructs completion percentages from the full answer
// history. Only the latest verdict per question counts, and answers recorded
// in abandoned sessions count too.
type ProgressService struct {
	answerRepo repository.AnswerRepository
}

func NewProgressService(answerRepo repository.AnswerRepository) *ProgressService {
	return &ProgressService{answerRepo: answerRepo}
}

func (s *ProgressService) CompletionByLanguage(ctx context.Context, userID int64) (map[int64]float64, error) {
	return s.completion(ctx, userID, repository.DimensionLanguage)
}

func (s *ProgressService) CompletionByTheme(ctx context.Context, userID int64) (map[int64]float64, error) {
	return s.completion(ctx, userID, repository.DimensionTheme)
}

func (s *ProgressService) CompletionByDifficulty(ctx context.Context, userID int64) (map[int64]float64, error) {
	return s.completion(ctx, userID, repository.DimensionDifficulty)
}

func (s *ProgressService) completion(ctx context.Context, userID int64, dim repository.Dimension) (map[int64]float64, error) {
	stats, err := s.answerRepo.CompletionStats(ctx, userID, dim)
	if err != nil {
		return nil, fmt.Errorf("completion stats: %w", err)
	}
	percentages := make(map[int64]float64, len(stats))
	for key, stat := range stats {
		percentages[key] = stat.Percentage()
	}
	return percentages, nil
}
