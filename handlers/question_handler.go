package handlers

import (
	"net/http"

	"predictrack/auditlog"
	"predictrack/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService   *services.QuestionService
	predictionService *services.PredictionService
	audit             *auditlog.Log
}

func NewQuestionHandler(questionService *services.QuestionService, predictionService *services.PredictionService, audit *auditlog.Log) *QuestionHandler {
	return &QuestionHandler{
		questionService:   questionService,
		predictionService: predictionService,
		audit:             audit,
	}
}

// ListQuestions is public: anonymous visitors see questions and community
// sentiment without signing in.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.questionService.ListQuestions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	aggregates, err := h.predictionService.Aggregates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"questions":  questions,
		"aggregates": aggregates,
	})
}

func (h *QuestionHandler) GetQuestionByID(c *gin.Context) {
	question, err := h.questionService.GetQuestionByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) ResolveQuestion(c *gin.Context) {
	var req services.ResolveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.ResolveQuestion(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	if err := h.questionService.DeleteQuestion(c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// GetAuditLog exposes the bounded in-memory event log to administrators.
func (h *QuestionHandler) GetAuditLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.audit.Entries()})
}
