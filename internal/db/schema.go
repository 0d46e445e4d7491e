package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT        NOT NULL,
		email         TEXT        NOT NULL UNIQUE,
		password_hash TEXT        NOT NULL,
		role          TEXT        NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		refresh_token TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id         BIGSERIAL PRIMARY KEY,
		title      TEXT        NOT NULL,
		content    TEXT        NOT NULL,
		user_id    BIGINT      NOT NULL REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         BIGSERIAL PRIMARY KEY,
		body       TEXT        NOT NULL,
		user_id    BIGINT      NOT NULL REFERENCES users(id),
		recipe_id  BIGINT      NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_user_id ON recipes(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_recipe_id ON comments(recipe_id)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("db: migrate: %w", err)
		}
	}
	return nil
}
