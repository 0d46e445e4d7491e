package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/adityarao/recipeshare/internal/models"
)

type PGCommentStore struct {
	DB *sqlx.DB
}

func NewPGCommentStore(db *sqlx.DB) *PGCommentStore {
	return &PGCommentStore{DB: db}
}

func (s *PGCommentStore) Create(ctx context.Context, recipeID, userID int64, body string) (*models.Comment, error) {
	c := models.Comment{
		Body:     body,
		UserID:   userID,
		RecipeID: recipeID,
	}

	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO comments (body, user_id, recipe_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, body, userID, recipeID).
		Scan(&c.ID, &c.CreatedAt)

	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PGCommentStore) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var c models.Comment
	err := s.DB.GetContext(ctx, &c, `SELECT * FROM comments WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PGCommentStore) ListByRecipe(ctx context.Context, recipeID int64) ([]models.CommentWithAuthor, error) {
	comments := []models.CommentWithAuthor{}
	err := s.DB.SelectContext(ctx, &comments, `
		SELECT c.id, c.body, c.user_id, c.recipe_id, c.created_at,
		       u.name AS author_name, u.email AS author_email
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.recipe_id = $1
		ORDER BY c.created_at ASC
	`, recipeID)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *PGCommentStore) Delete(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
