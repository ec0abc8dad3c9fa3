package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/vedran77/userhub/internal/auth"
	"github.com/vedran77/userhub/internal/config"
	"github.com/vedran77/userhub/internal/database"
	postgresrepo "github.com/vedran77/userhub/internal/repository/postgres"
	"github.com/vedran77/userhub/internal/service"
	"github.com/vedran77/userhub/internal/transport/http/handlers"
	"github.com/vedran77/userhub/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// Database
	if err := database.Migrate(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Token codec
	tokens, err := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTAlgorithm, time.Duration(cfg.AccessTokenTTLMin)*time.Minute)
	if err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	profileRepo := postgresrepo.NewProfileRepo(pool)

	// Services
	userService := service.NewUserService(userRepo, profileRepo)
	profileService := service.NewProfileService(profileRepo)
	authService := service.NewAuthService(userService, tokens)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// Auth middleware
	authn := middleware.Auth(tokens, userRepo)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// Protected - Auth
	mux.Handle("POST /api/v1/auth/refresh", authn(http.HandlerFunc(authHandler.Refresh)))

	// Protected - Users
	mux.Handle("GET /api/v1/users/me", authn(http.HandlerFunc(userHandler.Me)))
	mux.Handle("PUT /api/v1/users/me", authn(http.HandlerFunc(userHandler.UpdateMe)))
	mux.Handle("PUT /api/v1/users/me/password", authn(http.HandlerFunc(userHandler.ChangePassword)))
	mux.Handle("GET /api/v1/users", authn(http.HandlerFunc(userHandler.List)))
	mux.Handle("PATCH /api/v1/users/{id}/deactivate", authn(http.HandlerFunc(userHandler.Deactivate)))

	// Protected - Profiles
	mux.Handle("GET /api/v1/profiles/me", authn(http.HandlerFunc(profileHandler.Me)))
	mux.Handle("PUT /api/v1/profiles/me", authn(http.HandlerFunc(profileHandler.UpdateMe)))
	mux.Handle("GET /api/v1/profiles/me/completion", authn(http.HandlerFunc(profileHandler.Completion)))
	mux.Handle("PUT /api/v1/profiles/me/avatar", authn(http.HandlerFunc(profileHandler.UpdateAvatar)))
	mux.Handle("DELETE /api/v1/profiles/me/avatar", authn(http.HandlerFunc(profileHandler.DeleteAvatar)))
	mux.Handle("GET /api/v1/profiles/search", authn(http.HandlerFunc(profileHandler.Search)))
	mux.Handle("GET /api/v1/profiles", authn(http.HandlerFunc(profileHandler.List)))
	mux.Handle("GET /api/v1/profiles/{id}", authn(http.HandlerFunc(profileHandler.Get)))

	// Start server with CORS and request IDs
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.RequestID(middleware.CORS(mux))))
}
