package main

import (
	"log"

	"github.com/jestfeed/backend/internal/cache"
	"github.com/jestfeed/backend/internal/router"
	"github.com/jestfeed/backend/internal/validators"
	"github.com/jestfeed/backend/pkg/config"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration (seeds from .env when present)
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Optional Redis cache; nil when REDIS_ADDR is unset or unreachable
	c := cache.New(cfg.RedisAddr)
	defer c.Close()

	// Create Echo instance
	e := echo.New()

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo, c)

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
