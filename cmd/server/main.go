package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/meddeck-app/backend/internal/router"
	"github.com/meddeck-app/backend/pkg/config"
	"github.com/meddeck-app/backend/pkg/firebase"
	"github.com/meddeck-app/backend/pkg/logger"
	"github.com/meddeck-app/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logger for the fan-out service
	zlog, err := logger.Init(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, firebaseApp.AuthClient, firebaseApp.MessagingClient, zlog)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
