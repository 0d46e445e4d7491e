package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/adityarao/recipeshare/internal/models"
	"github.com/adityarao/recipeshare/internal/store"
	"github.com/adityarao/recipeshare/internal/utils"
)

type RecipeHandler struct {
	Recipes  store.RecipeStore
	Comments store.CommentStore
	Log      *zap.Logger
}

func NewRecipeHandler(recipes store.RecipeStore, comments store.CommentStore, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{Recipes: recipes, Comments: comments, Log: log}
}

type recipeReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *RecipeHandler) Ping(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Recipe API is working!"})
}

// ---------------------- LIST MINE ----------------------

func (h *RecipeHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := utils.UserFrom(r.Context())
	if user == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized!")
		return
	}

	recipes, err := h.Recipes.ListByOwner(r.Context(), user.ID)
	if err != nil {
		h.Log.Error("recipe list failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Your recipes fetched successfully!",
		"recipes": recipes,
	})
}

// ---------------------- LIST ALL (admin) ----------------------

func (h *RecipeHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	user := utils.UserFrom(r.Context())
	if user == nil || user.Role != models.RoleAdmin {
		utils.JSONError(w, http.StatusForbidden, "Admins only!")
		return
	}

	recipes, err := h.Recipes.ListAllWithOwners(r.Context())
	if err != nil {
		h.Log.Error("recipe list failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "All recipes fetched successfully!",
		"recipes": recipes,
	})
}

// ---------------------- CREATE ----------------------

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := utils.UserFrom(r.Context())
	if user == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized!")
		return
	}

	var req recipeReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Title == "" || req.Content == "" {
		utils.JSONError(w, http.StatusBadRequest, "Title and content are required!")
		return
	}

	recipe, err := h.Recipes.Create(r.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		h.Log.Error("recipe create failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Recipe created successfully!",
		"recipe":  recipe,
	})
}

// ---------------------- UPDATE ----------------------

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := utils.UserFrom(r.Context())
	if user == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized!")
		return
	}

	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	var req recipeReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Title == "" || req.Content == "" {
		utils.JSONError(w, http.StatusBadRequest, "Title and content required!")
		return
	}

	recipe, ok := h.loadOwned(w, r, id, user, "update")
	if !ok {
		return
	}

	updated, err := h.Recipes.Update(r.Context(), recipe.ID, req.Title, req.Content)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Recipe not found!")
		return
	}
	if err != nil {
		h.Log.Error("recipe update failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Recipe updated successfully!",
		"recipe":  updated,
	})
}

// ---------------------- DELETE ----------------------

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := utils.UserFrom(r.Context())
	if user == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized!")
		return
	}

	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	if _, ok := h.loadOwned(w, r, id, user, "delete"); !ok {
		return
	}

	if err := h.Recipes.Delete(r.Context(), id); err != nil && !errors.Is(err, store.ErrNotFound) {
		h.Log.Error("recipe delete failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------- COMMENTS ----------------------

func (h *RecipeHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user := utils.UserFrom(r.Context())
	if user == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized!")
		return
	}

	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}
	if req.Body == "" {
		utils.JSONError(w, http.StatusBadRequest, "Comment text is required!")
		return
	}

	if _, err := h.Recipes.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "Recipe not found!")
			return
		}
		h.Log.Error("recipe lookup failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	comment, err := h.Comments.Create(r.Context(), id, user.ID, req.Body)
	if err != nil {
		h.Log.Error("comment create failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Comment added successfully!",
		"comment": comment,
	})
}

func (h *RecipeHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, ok := h.recipeID(w, r)
	if !ok {
		return
	}

	if _, err := h.Recipes.GetByID(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "Recipe not found!")
			return
		}
		h.Log.Error("recipe lookup failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	comments, err := h.Comments.ListByRecipe(r.Context(), id)
	if err != nil {
		h.Log.Error("comment list failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Comments fetched successfully!",
		"comments": comments,
	})
}

func (h *RecipeHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user := utils.UserFrom(r.Context())
	if user == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized!")
		return
	}

	commentID, err := strconv.ParseInt(chi.URLParam(r, "commentID"), 10, 64)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Comment ID required!")
		return
	}

	comment, err := h.Comments.GetByID(r.Context(), commentID)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Comment not found!")
		return
	}
	if err != nil {
		h.Log.Error("comment lookup failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	// The comment author, the recipe owner and admins may delete.
	allowed := comment.UserID == user.ID || user.Role == models.RoleAdmin
	if !allowed {
		recipe, err := h.Recipes.GetByID(r.Context(), comment.RecipeID)
		if err == nil && recipe.UserID == user.ID {
			allowed = true
		}
	}
	if !allowed {
		utils.JSONError(w, http.StatusForbidden, "You are not allowed to delete this comment!")
		return
	}

	if err := h.Comments.Delete(r.Context(), commentID); err != nil && !errors.Is(err, store.ErrNotFound) {
		h.Log.Error("comment delete failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------- helpers ----------------------

func (h *RecipeHandler) recipeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Recipe ID required!")
		return 0, false
	}
	return id, true
}

// loadOwned fetches the recipe and enforces the owner-or-admin rule shared
// by update and delete.
func (h *RecipeHandler) loadOwned(w http.ResponseWriter, r *http.Request, id int64, user *models.User, action string) (*models.Recipe, bool) {
	recipe, err := h.Recipes.GetByID(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "Recipe not found!")
		return nil, false
	}
	if err != nil {
		h.Log.Error("recipe lookup failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return nil, false
	}

	if recipe.UserID != user.ID && user.Role != models.RoleAdmin {
		utils.JSONError(w, http.StatusForbidden, "You are not allowed to "+action+" this recipe!")
		return nil, false
	}

	return recipe, true
}
