package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/heppy363/Play/internal/common"
	"github.com/heppy363/Play/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	UpdatePassword(ctx context.Context, id int64, hashedPassword string, resetRequired bool) error
	SetResetRequired(ctx context.Context, id int64, resetRequired bool) error
	Delete(ctx context.Context, id int64) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, hashed_password, first_name, last_name, telegram_id, role, reset_required)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.HashedPassword, user.FirstName, user.LastName, user.TelegramID, user.Role, user.ResetRequired,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, hashed_password, first_name, last_name, telegram_id, role, reset_required, created_at
	          FROM users WHERE username = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.HashedPassword, &user.FirstName, &user.LastName,
		&user.TelegramID, &user.Role, &user.ResetRequired, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, username, hashed_password, first_name, last_name, telegram_id, role, reset_required, created_at
	          FROM users WHERE id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.HashedPassword, &user.FirstName, &user.LastName,
		&user.TelegramID, &user.Role, &user.ResetRequired, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdatePassword(ctx context.Context, id int64, hashedPassword string, resetRequired bool) error {
	query := `UPDATE users SET hashed_password = $1, reset_required = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, hashedPassword, resetRequired, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdatePassword: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) SetResetRequired(ctx context.Context, id int64, resetRequired bool) error {
	query := `UPDATE users SET reset_required = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, resetRequired, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.SetResetRequired: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if common.IsForeignKeyViolation(err) {
			return fmt.Errorf("user has recorded answers or progress: %w", common.ErrReferenced)
		}
		return fmt.Errorf("pgUserRepository.Delete: %w", err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return common.ErrNotFound
	}
	return nil
}
