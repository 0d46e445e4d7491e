package models

import "time"

type Recipe struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RecipeWithOwner joins the owner's public fields onto a recipe for the
// admin listing.
type RecipeWithOwner struct {
	Recipe
	OwnerName  string `db:"owner_name" json:"owner_name"`
	OwnerEmail string `db:"owner_email" json:"owner_email"`
	OwnerRole  Role   `db:"owner_role" json:"owner_role"`
}
