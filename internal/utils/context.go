package utils

import (
	"context"

	"github.com/adityarao/recipeshare/internal/models"
)

type ctxKey string

const ctxUserKey ctxKey = "user"

// WithUser attaches the resolved identity to the request context.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxUserKey, u)
}

// UserFrom returns the identity placed in the context by the access guard,
// or nil when the request is anonymous.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(ctxUserKey).(*models.User)
	return u
}
