package routes

import (
	"log"
	"net/http"

	"predictrack/handlers"
	"predictrack/middleware"
	"predictrack/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	questionHandler *handlers.QuestionHandler,
	predictionHandler *handlers.PredictionHandler,
	hub *services.Hub,
	jwtSecret string,
	isAdmin func(email string) bool,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public routes: anonymous visitors browse questions and sentiment
		questions := api.Group("/questions")
		{
			questions.GET("", questionHandler.ListQuestions)
			questions.GET("/:id", questionHandler.GetQuestionByID)
		}
		api.GET("/aggregates", predictionHandler.GetAggregates)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			// User profile
			protected.GET("/auth/profile", authHandler.GetProfile)

			// Prediction routes
			predictions := protected.Group("/predictions")
			{
				predictions.POST("", predictionHandler.SubmitPrediction)
				predictions.GET("", predictionHandler.GetUserPredictions)
			}

			// Admin routes
			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly(isAdmin))
			{
				admin.POST("/questions", questionHandler.CreateQuestion)
				admin.PUT("/questions/:id", questionHandler.UpdateQuestion)
				admin.POST("/questions/:id/resolve", questionHandler.ResolveQuestion)
				admin.DELETE("/questions/:id", questionHandler.DeleteQuestion)
				admin.GET("/audit", questionHandler.GetAuditLog)
			}
		}
	}

	// WebSocket endpoint for realtime prediction updates. A token is
	// optional: anonymous viewers still see aggregate changes.
	router.GET("/ws", func(c *gin.Context) {
		var userID string
		if token := c.Query("token"); token != "" {
			id, _, err := middleware.ParseToken(token, jwtSecret)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}
			userID = id
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upgrade connection"})
			return
		}

		hub.RegisterClient(conn, userID)
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
