package database

import (
	"context"
	"fmt"
)

// Statements are ordered so that foreign keys always reference tables created
// earlier in the list.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		hashed_password TEXT NOT NULL,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		telegram_id TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'user',
		reset_required BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS languages (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS themes (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS difficulties (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		level INTEGER NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id BIGSERIAL PRIMARY KEY,
		language_id BIGINT NOT NULL REFERENCES languages (id),
		theme_id BIGINT NOT NULL REFERENCES themes (id),
		difficulty_id BIGINT NOT NULL REFERENCES difficulties (id),
		question_type TEXT NOT NULL,
		question TEXT NOT NULL,
		option_a TEXT,
		option_b TEXT,
		option_c TEXT,
		option_d TEXT,
		correct_option TEXT,
		code_solution TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS user_answers (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		question_id BIGINT NOT NULL REFERENCES questions (id),
		is_correct BOOLEAN NOT NULL,
		answered_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT unique_answer UNIQUE (user_id, question_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users (id),
		theme_id BIGINT NOT NULL REFERENCES themes (id),
		language_id BIGINT NOT NULL REFERENCES languages (id),
		difficulty_id BIGINT NOT NULL REFERENCES difficulties (id),
		score INTEGER NOT NULL DEFAULT 0 CHECK (score >= 0),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT unique_progress UNIQUE (user_id, theme_id, language_id, difficulty_id)
	)`,
}

// EnsureSchema creates all tables on startup. Idempotent.
func EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.EnsureSchema: %w", err)
		}
	}
	return nil
}
