package middleware

import (
	"errors"
	"net/http"

	"github.com/adityarao/recipeshare/internal/models"
	"github.com/adityarao/recipeshare/internal/store"
	"github.com/adityarao/recipeshare/internal/token"
	"github.com/adityarao/recipeshare/internal/utils"
)

// AccessCookie is the name of the cookie carrying the access token.
const AccessCookie = "accessToken"

// RequireAuth resolves the caller's identity from the access-token cookie
// and attaches it to the request context. Expired access tokens force a
// re-login; no refresh rotation happens here.
func RequireAuth(users store.UserStore, accessSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(AccessCookie)
			if err != nil || cookie.Value == "" {
				utils.JSONError(w, http.StatusUnauthorized, "Please login first!")
				return
			}

			claims, err := token.Verify(cookie.Value, accessSecret)
			if err != nil {
				if errors.Is(err, token.ErrExpired) {
					utils.JSONError(w, http.StatusUnauthorized, "Session expired. Please login again.")
					return
				}
				utils.JSONError(w, http.StatusUnauthorized, "Invalid token!")
				return
			}

			// The token may outlive the account.
			user, err := users.GetByID(r.Context(), claims.UserID())
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "User no longer exists!")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.WithUser(r.Context(), user)))
		})
	}
}

// RequireRole passes the request through only when the resolved identity
// holds one of the allowed roles. Chain it after RequireAuth; the missing
// identity branch is a defensive check.
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := utils.UserFrom(r.Context())
			if user == nil {
				utils.JSONError(w, http.StatusUnauthorized, "You must be logged in!")
				return
			}

			for _, role := range allowed {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.JSONError(w, http.StatusForbidden, "Access denied! You don't have permission.")
		})
	}
}
