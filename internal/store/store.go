package store

import (
	"context"
	"errors"

	"github.com/adityarao/recipeshare/internal/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore persists user identities. Emails are normalized (trimmed,
// lowercased) before they hit the database, so lookups are effectively
// case-insensitive.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error)
	// GetByEmail returns the full row, password hash included; it backs
	// the login path. ErrNotFound if no such email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID loads the identity projection used by the access guard:
	// password hash and refresh token stay out of the result.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	// GetRefreshToken returns the stored refresh token, nil when logged out.
	GetRefreshToken(ctx context.Context, id int64) (*string, error)
	// SetRefreshToken overwrites the stored refresh token; nil clears it.
	// Last write wins under concurrent logins.
	SetRefreshToken(ctx context.Context, id int64, token *string) error
	SetRole(ctx context.Context, id int64, role models.Role) error
}

type RecipeStore interface {
	Create(ctx context.Context, userID int64, title, content string) (*models.Recipe, error)
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	ListByOwner(ctx context.Context, userID int64) ([]models.Recipe, error)
	ListAllWithOwners(ctx context.Context) ([]models.RecipeWithOwner, error)
	// Update mutates title/content only; id, owner and created_at are
	// immutable.
	Update(ctx context.Context, id int64, title, content string) (*models.Recipe, error)
	Delete(ctx context.Context, id int64) error
}

type CommentStore interface {
	Create(ctx context.Context, recipeID, userID int64, body string) (*models.Comment, error)
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	ListByRecipe(ctx context.Context, recipeID int64) ([]models.CommentWithAuthor, error)
	Delete(ctx context.Context, id int64) error
}
