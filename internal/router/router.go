package router

import (
	"log"

	"github.com/jestfeed/backend/internal/cache"
	"github.com/jestfeed/backend/internal/handlers"
	"github.com/jestfeed/backend/internal/middleware"
	"github.com/jestfeed/backend/internal/models"
	"github.com/jestfeed/backend/internal/notifications"
	"github.com/jestfeed/backend/internal/repositories"
	"github.com/jestfeed/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, appCache *cache.Cache) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	if err := repositories.EnsureHandleIndex(pgdb); err != nil {
		log.Fatalf("Failed to create handle index: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "Jestfeed API is running!"})
	})

	// --- Initialize repositories and services ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDBName))
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)
	notifier := notifications.New(notificationRepo, userRepo, postRepo, appCache)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	public := e.Group("/api")
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterPublicUserRoutes(public)

	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPublicPostRoutes(public)
	log.Println("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to protected routes.")

	userHandler.RegisterProfileRoutes(api)
	postHandler.RegisterPostRoutes(api)

	reactionHandler := handlers.NewReactionHandler(postRepo, userRepo, notifier)
	reactionHandler.RegisterReactionRoutes(api)
	log.Println("Reaction routes configured.")

	commentHandler := handlers.NewCommentHandler(postRepo, userRepo, notifier)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, appCache)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
