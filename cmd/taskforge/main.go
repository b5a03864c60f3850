package main

import (
	"github.com/joho/godotenv"

	"github.com/taskforge-dev/taskforge/db"
	"github.com/taskforge-dev/taskforge/internal/auth"
	"github.com/taskforge-dev/taskforge/internal/config"
	"github.com/taskforge-dev/taskforge/internal/logging"
	"github.com/taskforge-dev/taskforge/internal/router"
)

func main() {
	logging.InitLogger()

	if err := godotenv.Load(); err != nil {
		logging.Logger.Warnf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()

	if err != nil {
		logging.Logger.Fatalf("Invalid configuration: %v", err)
	}

	if err := auth.Init(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL); err != nil {
		logging.Logger.Fatalf("Failed to initialize JWT: %v", err)
	}

	if err := db.ConnectDatabase(cfg.DatabaseDSN); err != nil {
		logging.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logging.Logger.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	logging.Logger.Infof("Starting server on port %s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}
