package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/adityarao/recipeshare/internal/models"
	"github.com/adityarao/recipeshare/internal/store"
)

// map-backed stores standing in for Postgres in handler tests

type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[int64]*models.User)}
}

func (s *memUserStore) Create(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	if err := role.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	norm := store.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == norm {
			return nil, store.ErrDuplicateEmail
		}
	}

	s.nextID++
	now := time.Now()
	u := &models.User{
		ID:           s.nextID,
		Name:         name,
		Email:        norm,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u

	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	norm := store.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == norm {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}

	// mirror the narrow projection the real store uses
	cp := *u
	cp.PasswordHash = ""
	cp.RefreshToken = nil
	return &cp, nil
}

func (s *memUserStore) GetRefreshToken(ctx context.Context, id int64) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if u.RefreshToken == nil {
		return nil, nil
	}
	tok := *u.RefreshToken
	return &tok, nil
}

func (s *memUserStore) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.RefreshToken = token
	u.UpdatedAt = time.Now()
	return nil
}

func (s *memUserStore) SetRole(ctx context.Context, id int64, role models.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.Role = role
	return nil
}

func (s *memUserStore) delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type memRecipeStore struct {
	mu      sync.Mutex
	nextID  int64
	recipes map[int64]*models.Recipe
	users   *memUserStore
}

func newMemRecipeStore(users *memUserStore) *memRecipeStore {
	return &memRecipeStore{recipes: make(map[int64]*models.Recipe), users: users}
}

func (s *memRecipeStore) Create(ctx context.Context, userID int64, title, content string) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	now := time.Now()
	r := &models.Recipe{
		ID:        s.nextID,
		Title:     title,
		Content:   content,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.recipes[r.ID] = r

	cp := *r
	return &cp, nil
}

func (s *memRecipeStore) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *memRecipeStore) ListByOwner(ctx context.Context, userID int64) ([]models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Recipe{}
	for _, r := range s.recipes {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *memRecipeStore) ListAllWithOwners(ctx context.Context) ([]models.RecipeWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.RecipeWithOwner{}
	for _, r := range s.recipes {
		row := models.RecipeWithOwner{Recipe: *r}
		if u, ok := s.users.users[r.UserID]; ok {
			row.OwnerName = u.Name
			row.OwnerEmail = u.Email
			row.OwnerRole = u.Role
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *memRecipeStore) Update(ctx context.Context, id int64, title, content string) (*models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r.Title = title
	r.Content = content
	r.UpdatedAt = time.Now()

	cp := *r
	return &cp, nil
}

func (s *memRecipeStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.recipes, id)
	return nil
}

type memCommentStore struct {
	mu       sync.Mutex
	nextID   int64
	comments map[int64]*models.Comment
	users    *memUserStore
}

func newMemCommentStore(users *memUserStore) *memCommentStore {
	return &memCommentStore{comments: make(map[int64]*models.Comment), users: users}
}

func (s *memCommentStore) Create(ctx context.Context, recipeID, userID int64, body string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	c := &models.Comment{
		ID:        s.nextID,
		Body:      body,
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	s.comments[c.ID] = c

	cp := *c
	return &cp, nil
}

func (s *memCommentStore) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *memCommentStore) ListByRecipe(ctx context.Context, recipeID int64) ([]models.CommentWithAuthor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.CommentWithAuthor{}
	for _, c := range s.comments {
		if c.RecipeID != recipeID {
			continue
		}
		row := models.CommentWithAuthor{Comment: *c}
		if u, ok := s.users.users[c.UserID]; ok {
			row.AuthorName = u.Name
			row.AuthorEmail = u.Email
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *memCommentStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}
