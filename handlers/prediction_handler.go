package handlers

import (
	"net/http"
	"time"

	"predictrack/services"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	predictionService *services.PredictionService
	hub               *services.Hub
}

func NewPredictionHandler(predictionService *services.PredictionService, hub *services.Hub) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
		hub:               hub,
	}
}

func (h *PredictionHandler) SubmitPrediction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req services.SubmitPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.predictionService.SubmitPrediction(userID.(string), &req, h.hub)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, prediction)
}

// GetUserPredictions returns the user's current answers (latest-wins) plus
// summary stats.
func (h *PredictionHandler) GetUserPredictions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	view, err := h.predictionService.UserDashboard(userID.(string), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetAggregates returns community sentiment for every question.
func (h *PredictionHandler) GetAggregates(c *gin.Context) {
	aggregates, err := h.predictionService.Aggregates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, aggregates)
}
