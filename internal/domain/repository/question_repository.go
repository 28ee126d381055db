package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
)

type QuestionRepository interface {
	Create(ctx context.Context, question *model.Question) error
	FindByID(ctx context.Context, id int64) (*model.Question, error)
	// ListByTriple returns every question of one language/theme/difficulty
	// combination, the universe a quiz session draws from.
	ListByTriple(ctx context.Context, triple model.Triple) ([]model.Question, error)
	CountByTriple(ctx context.Context, triple model.Triple) (int, error)
	ListAll(ctx context.Context) ([]model.Question, error)
	Delete(ctx context.Context, id int64) error
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

const questionColumns = `id, language_id, theme_id, difficulty_id, question_type, question,
	option_a, option_b, option_c, option_d, correct_option, code_solution, created_at`

func scanQuestion(row interface{ Scan(...any) error }, q *model.Question) error {
	return row.Scan(
		&q.ID, &q.LanguageID, &q.ThemeID, &q.DifficultyID, &q.Type, &q.Prompt,
		&q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &q.CorrectOption, &q.CodeSolution, &q.CreatedAt,
	)
}

func (r *pgQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	query := `INSERT INTO questions
	            (language_id, theme_id, difficulty_id, question_type, question,
	             option_a, option_b, option_c, option_d, correct_option, code_solution)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		q.LanguageID, q.ThemeID, q.DifficultyID, q.Type, q.Prompt,
		q.OptionA, q.OptionB, q.OptionC, q.OptionD, q.CorrectOption, q.CodeSolution,
	).Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return fmt.Errorf("language, theme or difficulty does not exist: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id int64) (*model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	q := &model.Question{}
	if err := scanQuestion(r.db.QueryRowContext(ctx, query, id), q); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	return q, nil
}

func (r *pgQuestionRepository) ListByTriple(ctx context.Context, triple model.Triple) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + `
	          FROM questions
	          WHERE theme_id = $1 AND language_id = $2 AND difficulty_id = $3`
	rows, err := r.db.QueryContext(ctx, query, triple.ThemeID, triple.LanguageID, triple.DifficultyID)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListByTriple query: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.ListByTriple scan: %w", err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListByTriple rows.Err: %w", err)
	}
	return questions, nil
}

func (r *pgQuestionRepository) CountByTriple(ctx context.Context, triple model.Triple) (int, error) {
	query := `SELECT COUNT(*) FROM questions WHERE theme_id = $1 AND language_id = $2 AND difficulty_id = $3`
	var count int
	if err := r.db.QueryRowContext(ctx, query, triple.ThemeID, triple.LanguageID, triple.DifficultyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgQuestionRepository.CountByTriple: %w", err)
	}
	return count, nil
}

func (r *pgQuestionRepository) ListAll(ctx context.Context) ([]model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListAll query: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		var q model.Question
		if err := scanQuestion(rows, &q); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.ListAll scan: %w", err)
		}
		questions = append(questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.ListAll rows.Err: %w", err)
	}
	return questions, nil
}

func (r *pgQuestionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return fmt.Errorf("question has recorded answers: %w", common.ErrReferenced)
		}
		return fmt.Errorf("pgQuestionRepository.Delete: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
