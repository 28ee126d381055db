package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type DifficultyRepository interface {
	Create(ctx context.Context, difficulty *model.Difficulty) error
	FindByID(ctx context.Context, id int64) (*model.Difficulty, error)
	FindByName(ctx context.Context, name string) (*model.Difficulty, error)
	// FindNextAbove returns the difficulty with the smallest level strictly
	// greater than the given one, or common.ErrNotFound when the ladder ends.
	FindNextAbove(ctx context.Context, level int) (*model.Difficulty, error)
	List(ctx context.Context) ([]model.Difficulty, error)
	Delete(ctx context.Context, id int64) error
}

type pgDifficultyRepository struct {
	db *sql.DB
}

func NewPgDifficultyRepository(db *sql.DB) DifficultyRepository {
	return &pgDifficultyRepository{db: db}
}

func (r *pgDifficultyRepository) Create(ctx context.Context, difficulty *model.Difficulty) error {
	query := `INSERT INTO difficulties (name, level) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, difficulty.Name, difficulty.Level).Scan(&difficulty.ID, &difficulty.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "level") {
				return fmt.Errorf("difficulty level %d already exists: %w", difficulty.Level, common.ErrDuplicateLevel)
			}
			return fmt.Errorf("difficulty with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgDifficultyRepository.Create: %w", err)
	}
	return nil
}

func (r *pgDifficultyRepository) FindByID(ctx context.Context, id int64) (*model.Difficulty, error) {
	query := `SELECT id, name, level, created_at FROM difficulties WHERE id = $1`
	difficulty := &model.Difficulty{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&difficulty.ID, &difficulty.Name, &difficulty.Level, &difficulty.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgDifficultyRepository.FindByID: %w", err)
	}
	return difficulty, nil
}

func (r *pgDifficultyRepository) FindByName(ctx context.Context, name string) (*model.Difficulty, error) {
	query := `SELECT id, name, level, created_at FROM difficulties WHERE name = $1`
	difficulty := &model.Difficulty{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&difficulty.ID, &difficulty.Name, &difficulty.Level, &difficulty.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgDifficultyRepository.FindByName: %w", err)
	}
	return difficulty, nil
}

func (r *pgDifficultyRepository) FindNextAbove(ctx context.Context, level int) (*model.Difficulty, error) {
	query := `SELECT id, name, level, created_at FROM difficulties WHERE level > $1 ORDER BY level ASC LIMIT 1`
	difficulty := &model.Difficulty{}
	err := r.db.QueryRowContext(ctx, query, level).Scan(&difficulty.ID, &difficulty.Name, &difficulty.Level, &difficulty.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgDifficultyRepository.FindNextAbove: %w", err)
	}
	return difficulty, nil
}

func (r *pgDifficultyRepository) List(ctx context.Context) ([]model.Difficulty, error) {
	query := `SELECT id, name, level, created_at FROM difficulties ORDER BY level ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgDifficultyRepository.List query: %w", err)
	}
	defer rows.Close()

	difficulties := []model.Difficulty{}
	for rows.Next() {
		var difficulty model.Difficulty
		if err := rows.Scan(&difficulty.ID, &difficulty.Name, &difficulty.Level, &difficulty.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgDifficultyRepository.List scan: %w", err)
		}
		difficulties = append(difficulties, difficulty)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgDifficultyRepository.List rows.Err: %w", err)
	}
	return difficulties, nil
}

func (r *pgDifficultyRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM difficulties WHERE id = $1`, id)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return fmt.Errorf("difficulty still has questions: %w", common.ErrReferenced)
		}
		return fmt.Errorf("pgDifficultyRepository.Delete: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
