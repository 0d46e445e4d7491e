package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/adityarao/recipeshare/internal/config"
	"github.com/adityarao/recipeshare/internal/db"
	"github.com/adityarao/recipeshare/internal/handlers"
	"github.com/adityarao/recipeshare/internal/middleware"
	"github.com/adityarao/recipeshare/internal/models"
	"github.com/adityarao/recipeshare/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	dbConn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.Migrate(dbConn); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	users := store.NewPGUserStore(dbConn)
	recipes := store.NewPGRecipeStore(dbConn)
	comments := store.NewPGCommentStore(dbConn)

	h := handlers.NewHandler(cfg, users, recipes, comments, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	requireAuth := middleware.RequireAuth(users, cfg.AccessSecret)

	r.Route("/api/auth", func(r chi.Router) {
		r.Get("/", h.Auth.Ping)
		r.Post("/register", h.Auth.Register)
		r.Post("/login", h.Auth.Login)
		r.Post("/refresh", h.Auth.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/logout", h.Auth.Logout)
		})
	})

	r.Route("/api/receipe", func(r chi.Router) {
		r.Get("/", h.Recipes.Ping)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/my", h.Recipes.ListMine)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleUser, models.RoleAdmin))
				r.Post("/", h.Recipes.Create)
				r.Put("/{id}", h.Recipes.Update)
				r.Delete("/{id}", h.Recipes.Delete)
				r.Post("/{id}/comments", h.Recipes.AddComment)
				r.Get("/{id}/comments", h.Recipes.ListComments)
				r.Delete("/{id}/comments/{commentID}", h.Recipes.DeleteComment)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/admin/all", h.Recipes.ListAll)
			})
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
