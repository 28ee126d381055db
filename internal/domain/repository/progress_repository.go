package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
)

type ProgressRepository interface {
	// AddScore merges delta into the progress row for (userID, triple),
	// creating the row if absent. Atomic with respect to concurrent merges of
	// the same key; never produces a second row for the triple.
	AddScore(ctx context.Context, userID int64, triple model.Triple, delta int) error
	Find(ctx context.Context, userID int64, triple model.Triple) (*model.Progress, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Progress, error)
	// Ranking returns every user's total score over all progress rows,
	// ordered by total descending, username ascending on ties.
	Ranking(ctx context.Context) ([]model.RankingEntry, error)
}

type pgProgressRepository struct {
	db *sql.DB
}

func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) AddScore(ctx context.Context, userID int64, triple model.Triple, delta int) error {
	// Single conditional upsert; the unique_progress constraint is the
	// race-safety backstop.
	query := `INSERT INTO user_progress (user_id, theme_id, language_id, difficulty_id, score)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id, theme_id, language_id, difficulty_id)
	          DO UPDATE SET score = user_progress.score + EXCLUDED.score, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, userID, triple.ThemeID, triple.LanguageID, triple.DifficultyID, delta); err != nil {
		if common.IsForeignKeyViolation(err) {
			return fmt.Errorf("user, theme, language or difficulty does not exist: %w", common.ErrNotFound)
		}
		return fmt.Errorf("pgProgressRepository.AddScore: %w", err)
	}
	return nil
}

func (r *pgProgressRepository) Find(ctx context.Context, userID int64, triple model.Triple) (*model.Progress, error) {
	query := `SELECT id, user_id, theme_id, language_id, difficulty_id, score, updated_at
	          FROM user_progress
	          WHERE user_id = $1 AND theme_id = $2 AND language_id = $3 AND difficulty_id = $4`
	progress := &model.Progress{}
	err := r.db.QueryRowContext(ctx, query, userID, triple.ThemeID, triple.LanguageID, triple.DifficultyID).Scan(
		&progress.ID, &progress.UserID, &progress.ThemeID, &progress.LanguageID,
		&progress.DifficultyID, &progress.Score, &progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProgressRepository.Find: %w", err)
	}
	return progress, nil
}

func (r *pgProgressRepository) ListByUser(ctx context.Context, userID int64) ([]model.Progress, error) {
	query := `SELECT id, user_id, theme_id, language_id, difficulty_id, score, updated_at
	          FROM user_progress WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	progresses := []model.Progress{}
	for rows.Next() {
		var p model.Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.ThemeID, &p.LanguageID, &p.DifficultyID, &p.Score, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.ListByUser scan: %w", err)
		}
		progresses = append(progresses, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListByUser rows.Err: %w", err)
	}
	return progresses, nil
}

func (r *pgProgressRepository) Ranking(ctx context.Context) ([]model.RankingEntry, error) {
	query := `SELECT u.username, SUM(up.score) AS total_score
	          FROM user_progress up
	          JOIN users u ON up.user_id = u.id
	          GROUP BY u.username
	          ORDER BY total_score DESC, u.username ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.Ranking query: %w", err)
	}
	defer rows.Close()

	entries := []model.RankingEntry{}
	position := 1
	for rows.Next() {
		var entry model.RankingEntry
		if err := rows.Scan(&entry.Username, &entry.TotalScore); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.Ranking scan: %w", err)
		}
		entry.Position = position
		position++
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.Ranking rows.Err: %w", err)
	}
	return entries, nil
}
