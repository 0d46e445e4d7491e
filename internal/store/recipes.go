package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/adityarao/recipeshare/internal/models"
)

type PGRecipeStore struct {
	DB *sqlx.DB
}

func NewPGRecipeStore(db *sqlx.DB) *PGRecipeStore {
	return &PGRecipeStore{DB: db}
}

func (s *PGRecipeStore) Create(ctx context.Context, userID int64, title, content string) (*models.Recipe, error) {
	r := models.Recipe{
		Title:   title,
		Content: content,
		UserID:  userID,
	}

	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO recipes (title, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, title, content, userID).
		Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)

	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGRecipeStore) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var r models.Recipe
	err := s.DB.GetContext(ctx, &r, `SELECT * FROM recipes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGRecipeStore) ListByOwner(ctx context.Context, userID int64) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	err := s.DB.SelectContext(ctx, &recipes, `
		SELECT * FROM recipes WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *PGRecipeStore) ListAllWithOwners(ctx context.Context) ([]models.RecipeWithOwner, error) {
	recipes := []models.RecipeWithOwner{}
	err := s.DB.SelectContext(ctx, &recipes, `
		SELECT r.id, r.title, r.content, r.user_id, r.created_at, r.updated_at,
		       u.name AS owner_name, u.email AS owner_email, u.role AS owner_role
		FROM recipes r
		JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *PGRecipeStore) Update(ctx context.Context, id int64, title, content string) (*models.Recipe, error) {
	var r models.Recipe
	err := s.DB.QueryRowxContext(ctx, `
		UPDATE recipes
		SET title = $1, content = $2, updated_at = now()
		WHERE id = $3
		RETURNING id, title, content, user_id, created_at, updated_at
	`, title, content, id).StructScan(&r)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *PGRecipeStore) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
