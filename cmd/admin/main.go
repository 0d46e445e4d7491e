// Command admin seeds or promotes the administrator account. Role changes
// only ever happen through this tool, never through the HTTP API.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/adityarao/recipeshare/internal/auth"
	"github.com/adityarao/recipeshare/internal/db"
	"github.com/adityarao/recipeshare/internal/models"
	"github.com/adityarao/recipeshare/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	name := getenv("ADMIN_NAME", "Admin")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dbConn, err := db.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	users := store.NewPGUserStore(dbConn)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if user.Role == models.RoleAdmin {
			log.Printf("admin already exists: %s", email)
			return
		}
		if err := users.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
			log.Fatalf("promote: %v", err)
		}
		log.Printf("user promoted to admin: %s", email)

	case errors.Is(err, store.ErrNotFound):
		hash, err := auth.HashPassword(password, auth.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		if _, err := users.Create(ctx, name, email, hash, models.RoleAdmin); err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("admin created successfully: %s", email)

	default:
		log.Fatalf("lookup: %v", err)
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
