package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
)

func TestAnswerSubmitRecordsVerdict(t *testing.T) {
	ctx := context.Background()
	questions := newFakeQuestionRepo()
	answers := newFakeAnswerRepo()
	svc := NewAnswerService(questions, answers)

	q := mcQuestion("A")
	q.ID = 0
	require.NoError(t, questions.Create(ctx, q))

	verdict, err := svc.Submit(ctx, 7, q.ID, Submission{SelectedOptions: []string{"A"}})
	require.NoError(t, err)
	assert.True(t, verdict)

	stored, err := answers.Find(ctx, 7, q.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCorrect)

	// resubmitting overwrites rather than appending
	verdict, err = svc.Submit(ctx, 7, q.ID, Submission{SelectedOptions: []string{"B"}})
	require.NoError(t, err)
	assert.False(t, verdict)

	stored, err = answers.Find(ctx, 7, q.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsCorrect)
	assert.Equal(t, 1, answers.rowCount())
}

func TestAnswerSubmitInvalidSelectionStillRecorded(t *testing.T) {
	ctx := context.Background()
	questions := newFakeQuestionRepo()
	answers := newFakeAnswerRepo()
	svc := NewAnswerService(questions, answers)

	q := mcQuestion("A")
	q.ID = 0
	require.NoError(t, questions.Create(ctx, q))

	verdict, err := svc.Submit(ctx, 7, q.ID, Submission{})
	assert.False(t, verdict)
	assert.ErrorIs(t, err, common.ErrInvalidSubmission)

	stored, findErr := answers.Find(ctx, 7, q.ID)
	require.NoError(t, findErr)
	assert.False(t, stored.IsCorrect)
}

func TestAnswerSubmitUnknownQuestion(t *testing.T) {
	svc := NewAnswerService(newFakeQuestionRepo(), newFakeAnswerRepo())
	_, err := svc.Submit(context.Background(), 7, 404, Submission{Text: "x"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAnswerSubmitStorageFailure(t *testing.T) {
	ctx := context.Background()
	questions := newFakeQuestionRepo()
	answers := newFakeAnswerRepo()
	svc := NewAnswerService(questions, answers)

	q := &model.Question{
		Type:         model.QuestionTypeOpenCode,
		Prompt:       "print",
		CodeSolution: strPtr("print(1)"),
	}
	require.NoError(t, questions.Create(ctx, q))

	answers.failNext = common.ErrStorageUnavailable
	_, err := svc.Submit(ctx, 7, q.ID, Submission{Text: "print(1)"})
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}
