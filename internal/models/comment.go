package models

import "time"

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	Body      string    `db:"body" json:"body"`
	UserID    int64     `db:"user_id" json:"user_id"`
	RecipeID  int64     `db:"recipe_id" json:"recipe_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CommentWithAuthor carries the commenter's public fields for listings.
type CommentWithAuthor struct {
	Comment
	AuthorName  string `db:"author_name" json:"author_name"`
	AuthorEmail string `db:"author_email" json:"author_email"`
}
