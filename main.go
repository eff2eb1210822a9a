package main

import (
	"log"

	"predictrack/auditlog"
	"predictrack/config"
	"predictrack/handlers"
	"predictrack/middleware"
	"predictrack/models"
	"predictrack/routes"
	"predictrack/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Question{},
		&models.Choice{},
		&models.Prediction{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Bounded in-memory audit trail, surfaced on the admin dashboard
	audit := auditlog.New(1000)

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	questionService := services.NewQuestionService(db, audit)
	predictionService := services.NewPredictionService(db, redisClient, audit)

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	questionHandler := handlers.NewQuestionHandler(questionService, predictionService, audit)
	predictionHandler := handlers.NewPredictionHandler(predictionService, hub)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, questionHandler, predictionHandler, hub, cfg.JWTSecret, cfg.IsAdmin)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
