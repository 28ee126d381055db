package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
)

type ThemeRepository interface {
	Create(ctx context.Context, theme *model.Theme) error
	FindByID(ctx context.Context, id int64) (*model.Theme, error)
	FindBySlug(ctx context.Context, slug string) (*model.Theme, error)
	List(ctx context.Context) ([]model.Theme, error)
	Rename(ctx context.Context, id int64, name, slug string) error
	Delete(ctx context.Context, id int64) error
}

type pgThemeRepository struct {
	db *sql.DB
}

func NewPgThemeRepository(db *sql.DB) ThemeRepository {
	return &pgThemeRepository{db: db}
}

func (r *pgThemeRepository) Create(ctx context.Context, theme *model.Theme) error {
	query := `INSERT INTO themes (name, slug) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, theme.Name, theme.Slug).Scan(&theme.ID, &theme.CreatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("theme with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgThemeRepository.Create: %w", err)
	}
	return nil
}

func (r *pgThemeRepository) FindByID(ctx context.Context, id int64) (*model.Theme, error) {
	query := `SELECT id, name, slug, created_at FROM themes WHERE id = $1`
	theme := &model.Theme{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&theme.ID, &theme.Name, &theme.Slug, &theme.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgThemeRepository.FindByID: %w", err)
	}
	return theme, nil
}

func (r *pgThemeRepository) FindBySlug(ctx context.Context, slug string) (*model.Theme, error) {
	query := `SELECT id, name, slug, created_at FROM themes WHERE slug = $1`
	theme := &model.Theme{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&theme.ID, &theme.Name, &theme.Slug, &theme.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgThemeRepository.FindBySlug: %w", err)
	}
	return theme, nil
}

func (r *pgThemeRepository) List(ctx context.Context) ([]model.Theme, error) {
	query := `SELECT id, name, slug, created_at FROM themes ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgThemeRepository.List query: %w", err)
	}
	defer rows.Close()

	themes := []model.Theme{}
	for rows.Next() {
		var theme model.Theme
		if err := rows.Scan(&theme.ID, &theme.Name, &theme.Slug, &theme.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgThemeRepository.List scan: %w", err)
		}
		themes = append(themes, theme)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgThemeRepository.List rows.Err: %w", err)
	}
	return themes, nil
}

func (r *pgThemeRepository) Rename(ctx context.Context, id int64, name, slug string) error {
	query := `UPDATE themes SET name = $1, slug = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, name, slug, id)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("theme with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgThemeRepository.Rename: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgThemeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM themes WHERE id = $1`, id)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return fmt.Errorf("theme still has questions: %w", common.ErrReferenced)
		}
		return fmt.Errorf("pgThemeRepository.Delete: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
