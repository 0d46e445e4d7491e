package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/adityarao/recipeshare/internal/auth"
	"github.com/adityarao/recipeshare/internal/config"
	"github.com/adityarao/recipeshare/internal/middleware"
	"github.com/adityarao/recipeshare/internal/models"
	"github.com/adityarao/recipeshare/internal/store"
	"github.com/adityarao/recipeshare/internal/token"
	"github.com/adityarao/recipeshare/internal/utils"
)

// RefreshCookie is the name of the cookie carrying the refresh token.
const RefreshCookie = "refreshToken"

type AuthHandler struct {
	Cfg   *config.Config
	Users store.UserStore
	Log   *zap.Logger
}

func NewAuthHandler(cfg *config.Config, users store.UserStore, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Log: log}
}

// ----------- Request/Response DTOs -------------

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profileResp struct {
	Message string         `json:"message"`
	User    models.Profile `json:"user"`
}

// -------------- PING -------------------------

func (h *AuthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Auth API is working"})
}

// -------------- REGISTER ---------------------

// Register creates the account but does not log it in; the client follows
// up with Login.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "All fields are required!")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	user, err := h.Users.Create(r.Context(), req.Name, req.Email, hash, models.RoleUser)
	if errors.Is(err, store.ErrDuplicateEmail) {
		utils.JSONError(w, http.StatusConflict, "Email already registered!")
		return
	}
	if err != nil {
		h.Log.Error("user create failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	utils.JSON(w, http.StatusCreated, profileResp{
		Message: "User created successfully!",
		User:    user.Profile(),
	})
}

// -------------- LOGIN ------------------------

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		return
	}

	if req.Email == "" || req.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "All fields are required!")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusNotFound, "User not found!")
		return
	}
	if err != nil {
		h.Log.Error("user lookup failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid credentials!")
		return
	}

	if err := h.issueSession(w, r, user.ID); err != nil {
		h.Log.Error("session issue failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	utils.JSON(w, http.StatusOK, profileResp{
		Message: "Login successful",
		User:    user.Profile(),
	})
}

// -------------- REFRESH ----------------------

// Refresh mints a new access token from the refresh cookie and rotates the
// stored refresh token. The cookie must match the token persisted at login;
// logout or a later login from elsewhere invalidates it.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshCookie)
	if err != nil || cookie.Value == "" {
		utils.JSONError(w, http.StatusUnauthorized, "Please login first!")
		return
	}

	claims, err := token.Verify(cookie.Value, h.Cfg.RefreshSecret)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			utils.JSONError(w, http.StatusUnauthorized, "Session expired. Please login again.")
			return
		}
		utils.JSONError(w, http.StatusUnauthorized, "Invalid token!")
		return
	}

	stored, err := h.Users.GetRefreshToken(r.Context(), claims.UserID())
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, http.StatusUnauthorized, "User no longer exists!")
		return
	}
	if err != nil {
		h.Log.Error("refresh token lookup failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	if stored == nil || *stored != cookie.Value {
		utils.JSONError(w, http.StatusUnauthorized, "Session expired. Please login again.")
		return
	}

	if err := h.issueSession(w, r, claims.UserID()); err != nil {
		h.Log.Error("session issue failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Token refreshed"})
}

// -------------- LOGOUT -----------------------

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user := utils.UserFrom(r.Context())
	if user == nil {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized!")
		return
	}

	if err := h.Users.SetRefreshToken(r.Context(), user.ID, nil); err != nil {
		h.Log.Error("refresh token clear failed", zap.Error(err))
		utils.JSONError(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}

	clearCookie(w, middleware.AccessCookie)
	clearCookie(w, RefreshCookie)

	utils.JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully!"})
}

// -------------- helpers ----------------------

// issueSession signs a fresh token pair, persists the refresh token on the
// user row (overwriting any prior session) and sets both cookies.
func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, userID int64) error {
	access, err := token.Issue(userID, h.Cfg.AccessSecret, h.Cfg.AccessTTL)
	if err != nil {
		return err
	}

	refresh, err := token.Issue(userID, h.Cfg.RefreshSecret, h.Cfg.RefreshTTL)
	if err != nil {
		return err
	}

	if err := h.Users.SetRefreshToken(r.Context(), userID, &refresh); err != nil {
		return err
	}

	setCookie(w, middleware.AccessCookie, access)
	setCookie(w, RefreshCookie, refresh)
	return nil
}

// Session cookies: expiry is enforced by the token claims, not the cookie.
func setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
