package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/meddeck-app/backend/internal/fanout"
	"github.com/meddeck-app/backend/internal/handlers"
	"github.com/meddeck-app/backend/internal/middleware"
	"github.com/meddeck-app/backend/internal/models"
	"github.com/meddeck-app/backend/internal/push"
	"github.com/meddeck-app/backend/internal/repositories"
	"github.com/meddeck-app/backend/pkg/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	pgdb *gorm.DB,
	mgClient *mongo.Client,
	firebaseAuthClient *auth.Client,
	messagingClient *messaging.Client,
	zlog *zap.Logger,
) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.LikeEntry{},
		&models.FollowRelation{},
		&models.Bookmark{},
		&models.Device{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	mongoDB := mgClient.Database(cfg.MongoDBName)

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(pgdb)
	deviceRepo := repositories.NewPostgresDeviceRepository(pgdb)
	contentRepo := repositories.NewMongoContentRepository(mongoDB)
	commentRepo := repositories.NewMongoCommentRepository(mongoDB)
	revisionRepo := repositories.NewMongoRevisionRepository(mongoDB)
	notificationRepo := repositories.NewMongoNotificationRepository(mongoDB)
	feedIndexRepo := repositories.NewMongoFeedIndexRepository(mongoDB)

	// --- Fan-out service ---
	var pusher fanout.Pusher
	if cfg.PushEnabled && messagingClient != nil {
		pusher = push.NewFCMPusher(messagingClient, deviceRepo, userRepo, zlog)
		log.Println("FCM push delivery enabled.")
	}
	engine := fanout.NewEngine(notificationRepo, contentRepo, commentRepo, bookmarkRepo, pusher, zlog)
	propagator := fanout.NewPropagator(contentRepo, feedIndexRepo, zlog)
	dispatcher := fanout.NewDispatcher(engine, propagator, zlog)
	log.Println("Fan-out dispatcher configured.")

	eventHandler := handlers.NewEventHandler(dispatcher)

	// --- Internal trigger routes (shared-secret authenticated) ---
	triggers := e.Group("/internal/triggers")
	triggers.Use(middleware.TriggerAuthMiddleware(cfg.TriggerSecret))
	eventHandler.RegisterTriggerRoutes(triggers)
	log.Println("Trigger routes configured.")

	// --- Protected client routes (require Firebase authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
	log.Println("Firebase authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Content routes
	contentHandler := handlers.NewContentHandler(contentRepo, commentRepo, likeRepo, bookmarkRepo, revisionRepo, dispatcher)
	contentHandler.RegisterContentRoutes(api)
	log.Println("Content routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, dispatcher)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Feed routes
	feedHandler := handlers.NewFeedHandler(feedIndexRepo, contentRepo, userRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, deviceRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Direct event invocation routes
	eventHandler.RegisterDirectRoutes(api)
	log.Println("Direct event routes configured.")

	log.Println("All routes configured.")
}
