package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
)

type LanguageRepository interface {
	Create(ctx context.Context, language *model.Language) error
	FindByID(ctx context.Context, id int64) (*model.Language, error)
	FindBySlug(ctx context.Context, slug string) (*model.Language, error)
	List(ctx context.Context) ([]model.Language, error)
	Rename(ctx context.Context, id int64, name, slug string) error
	Delete(ctx context.Context, id int64) error
}

type pgLanguageRepository struct {
	db *sql.DB
}

func NewPgLanguageRepository(db *sql.DB) LanguageRepository {
	return &pgLanguageRepository{db: db}
}

func (r *pgLanguageRepository) Create(ctx context.Context, language *model.Language) error {
	query := `INSERT INTO languages (name, slug) VALUES ($1, $2) RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, language.Name, language.Slug).Scan(&language.ID, &language.CreatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("language with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgLanguageRepository.Create: %w", err)
	}
	return nil
}

func (r *pgLanguageRepository) FindByID(ctx context.Context, id int64) (*model.Language, error) {
	query := `SELECT id, name, slug, created_at FROM languages WHERE id = $1`
	lang := &model.Language{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&lang.ID, &lang.Name, &lang.Slug, &lang.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgLanguageRepository.FindByID: %w", err)
	}
	return lang, nil
}

func (r *pgLanguageRepository) FindBySlug(ctx context.Context, slug string) (*model.Language, error) {
	query := `SELECT id, name, slug, created_at FROM languages WHERE slug = $1`
	lang := &model.Language{}
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&lang.ID, &lang.Name, &lang.Slug, &lang.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgLanguageRepository.FindBySlug: %w", err)
	}
	return lang, nil
}

func (r *pgLanguageRepository) List(ctx context.Context) ([]model.Language, error) {
	query := `SELECT id, name, slug, created_at FROM languages ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgLanguageRepository.List query: %w", err)
	}
	defer rows.Close()

	languages := []model.Language{}
	for rows.Next() {
		var lang model.Language
		if err := rows.Scan(&lang.ID, &lang.Name, &lang.Slug, &lang.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgLanguageRepository.List scan: %w", err)
		}
		languages = append(languages, lang)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgLanguageRepository.List rows.Err: %w", err)
	}
	return languages, nil
}

func (r *pgLanguageRepository) Rename(ctx context.Context, id int64, name, slug string) error {
	query := `UPDATE languages SET name = $1, slug = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, name, slug, id)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("language with this name already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgLanguageRepository.Rename: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete rejects languages that still have questions; the questions FK is
// the race-safety backstop behind the service-level check.
func (r *pgLanguageRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM languages WHERE id = $1`, id)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return fmt.Errorf("language still has questions: %w", common.ErrReferenced)
		}
		return fmt.Errorf("pgLanguageRepository.Delete: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
