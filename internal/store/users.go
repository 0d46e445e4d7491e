package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/adityarao/recipeshare/internal/models"
)

const uniqueViolation = "23505"

type PGUserStore struct {
	DB *sqlx.DB
}

func NewPGUserStore(db *sqlx.DB) *PGUserStore {
	return &PGUserStore{DB: db}
}

// NormalizeEmail trims and lowercases an email the same way the store does
// before persisting it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *PGUserStore) Create(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	u := models.User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
	}

	err := s.DB.QueryRowxContext(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.Role).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return &u, nil
}

func (s *PGUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.DB.GetContext(ctx, &u, `
		SELECT id, name, email, password_hash, role, refresh_token, created_at, updated_at
		FROM users
		WHERE email = $1
	`, NormalizeEmail(email))

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PGUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	// Deliberately narrow projection: the guard never sees secrets.
	err := s.DB.GetContext(ctx, &u, `
		SELECT id, name, email, role, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PGUserStore) GetRefreshToken(ctx context.Context, id int64) (*string, error) {
	var tok sql.NullString
	err := s.DB.GetContext(ctx, &tok, `SELECT refresh_token FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, nil
	}
	return &tok.String, nil
}

func (s *PGUserStore) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	res, err := s.DB.ExecContext(ctx, `
		UPDATE users SET refresh_token = $1, updated_at = now() WHERE id = $2
	`, token, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGUserStore) SetRole(ctx context.Context, id int64, role models.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	res, err := s.DB.ExecContext(ctx, `
		UPDATE users SET role = $1, updated_at = now() WHERE id = $2
	`, role, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
