package handlers

import (
	"go.uber.org/zap"

	"github.com/adityarao/recipeshare/internal/config"
	"github.com/adityarao/recipeshare/internal/store"
)

type Handler struct {
	Auth    *AuthHandler
	Recipes *RecipeHandler
}

func NewHandler(cfg *config.Config, users store.UserStore, recipes store.RecipeStore, comments store.CommentStore, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(cfg, users, log),
		Recipes: NewRecipeHandler(recipes, comments, log),
	}
}
