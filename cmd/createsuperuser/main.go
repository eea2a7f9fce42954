// Command createsuperuser creates an admin account that can obtain API tokens.
//
//	createsuperuser -username admin -password 's3cretpass' [-email admin@example.com]
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"toy_store_backend/internal/config"
	"toy_store_backend/internal/database"
	"toy_store_backend/internal/models"
	"toy_store_backend/internal/repositories"
	"toy_store_backend/internal/services"
	"toy_store_backend/pkg/utils"

	"github.com/rs/zerolog/log"
)

func main() {
	username := flag.String("username", "", "login name of the new admin")
	password := flag.String("password", os.Getenv("SUPERUSER_PASSWORD"), "password (defaults to $SUPERUSER_PASSWORD)")
	email := flag.String("email", "", "optional email address")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.StorageBackend != config.StorageBackendPostgres {
		log.Fatal().Str("storage", cfg.StorageBackend).Msg("createsuperuser needs STORAGE_BACKEND=postgres")
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.ApplyMigrations(db, cfg.Database.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	authService := services.NewAuthService(
		repositories.NewAuthRepository(db),
		utils.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL),
	)

	req := services.RegisterUserRequest{
		Username: *username,
		Password: *password,
		Email:    utils.NewNullString(*email),
		Role:     models.RoleAdmin,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := authService.RegisterUser(ctx, req)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			log.Fatal().Interface("fields", verr.Fields).Msg("Invalid superuser details")
		}
		log.Fatal().Err(err).Str("username", *username).Msg("Failed to create superuser")
	}
	log.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("Superuser created")
}
