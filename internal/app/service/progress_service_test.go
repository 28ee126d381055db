package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heppy363/Play/internal/domain/model"
	"github.com/heppy363/Play/internal/domain/repository"
)

func TestCompletionPercentages(t *testing.T) {
	answers := newFakeAnswerRepo()
	answers.stats[repository.DimensionLanguage] = map[int64]model.CompletionStat{
		1: {TotalQuestions: 8, CorrectAnswers: 2},
		2: {TotalQuestions: 3, CorrectAnswers: 3},
		3: {TotalQuestions: 5, CorrectAnswers: 0},
	}
	svc := NewProgressService(answers)

	got, err := svc.CompletionByLanguage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, map[int64]float64{1: 25, 2: 100, 3: 0}, got)
}

func TestCompletionPercentageBounds(t *testing.T) {
	stats := []model.CompletionStat{
		{TotalQuestions: 0, CorrectAnswers: 0},
		{TotalQuestions: 1, CorrectAnswers: 0},
		{TotalQuestions: 1, CorrectAnswers: 1},
		{TotalQuestions: 7, CorrectAnswers: 3},
	}
	for _, stat := range stats {
		p := stat.Percentage()
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 100.0)
	}
	// a dimension with no questions reads as zero, not a division error
	assert.Equal(t, 0.0, model.CompletionStat{}.Percentage())
}

func TestCompletionPerDimension(t *testing.T) {
	answers := newFakeAnswerRepo()
	answers.stats[repository.DimensionTheme] = map[int64]model.CompletionStat{
		4: {TotalQuestions: 4, CorrectAnswers: 1},
	}
	answers.stats[repository.DimensionDifficulty] = map[int64]model.CompletionStat{
		9: {TotalQuestions: 2, CorrectAnswers: 2},
	}
	svc := NewProgressService(answers)
	ctx := context.Background()

	byTheme, err := svc.CompletionByTheme(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int64]float64{4: 25}, byTheme)

	byDifficulty, err := svc.CompletionByDifficulty(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, map[int64]float64{9: 100}, byDifficulty)

	byLanguage, err := svc.CompletionByLanguage(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, byLanguage)
}
