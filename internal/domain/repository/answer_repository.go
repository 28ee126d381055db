package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
)

// Dimension selects which axis a completion-percentage aggregation groups by.
type Dimension string

const (
	DimensionLanguage   Dimension = "language_id"
	DimensionTheme      Dimension = "theme_id"
	DimensionDifficulty Dimension = "difficulty_id"
)

type AnswerRepository interface {
	// Upsert records the verdict for (userID, questionID), overwriting any
	// prior row. Exactly one row per pair ever exists.
	Upsert(ctx context.Context, userID, questionID int64, isCorrect bool) error
	Find(ctx context.Context, userID, questionID int64) (*model.Answer, error)
	// CompletionStats returns, for every distinct value of the dimension that
	// has at least one question, the total question count and how many of
	// those the user has answered correctly.
	CompletionStats(ctx context.Context, userID int64, dim Dimension) (map[int64]model.CompletionStat, error)
}

type pgAnswerRepository struct {
	db *sql.DB
}

func NewPgAnswerRepository(db *sql.DB) AnswerRepository {
	return &pgAnswerRepository{db: db}
}

func (r *pgAnswerRepository) Upsert(ctx context.Context, userID, questionID int64, isCorrect bool) error {
	query := `INSERT INTO user_answers (user_id, question_id, is_correct)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id, question_id)
	          DO UPDATE SET is_correct = EXCLUDED.is_correct, answered_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, userID, questionID, isCorrect); err != nil {
		if common.IsForeignKeyViolation(err) {
			return fmt.Errorf("user or question does not exist: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgAnswerRepository.Upsert: %w", err)
	}
	return nil
}

func (r *pgAnswerRepository) Find(ctx context.Context, userID, questionID int64) (*model.Answer, error) {
	query := `SELECT id, user_id, question_id, is_correct, answered_at
	          FROM user_answers WHERE user_id = $1 AND question_id = $2`
	answer := &model.Answer{}
	err := r.db.QueryRowContext(ctx, query, userID, questionID).Scan(
		&answer.ID, &answer.UserID, &answer.QuestionID, &answer.IsCorrect, &answer.AnsweredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgAnswerRepository.Find: %w", err)
	}
	return answer, nil
}

func (r *pgAnswerRepository) CompletionStats(ctx context.Context, userID int64, dim Dimension) (map[int64]model.CompletionStat, error) {
	// dim is one of the Dimension constants, never caller input.
	query := fmt.Sprintf(`
		SELECT q.%s,
		       COUNT(DISTINCT q.id) AS total_questions,
		       COUNT(DISTINCT CASE WHEN ua.is_correct THEN ua.question_id END) AS correct_answers
		FROM questions q
		LEFT JOIN user_answers ua ON q.id = ua.question_id AND ua.user_id = $1
		GROUP BY q.%s`, dim, dim)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgAnswerRepository.CompletionStats query: %w", err)
	}
	defer rows.Close()

	stats := map[int64]model.CompletionStat{}
	for rows.Next() {
		var key int64
		var stat model.CompletionStat
		if err := rows.Scan(&key, &stat.TotalQuestions, &stat.CorrectAnswers); err != nil {
			return nil, fmt.Errorf("pgAnswerRepository.CompletionStats scan: %w", err)
		}
		stats[key] = stat
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAnswerRepository.CompletionStats rows.Err: %w", err)
	}
	return stats, nil
}
