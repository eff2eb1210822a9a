package services

import (
	"errors"
	"fmt"
	"time"

	"predictrack/auditlog"
	"predictrack/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionService struct {
	db    *gorm.DB
	audit *auditlog.Log
}

func NewQuestionService(db *gorm.DB, audit *auditlog.Log) *QuestionService {
	return &QuestionService{db: db, audit: audit}
}

type CreateQuestionRequest struct {
	Text         string                `json:"text" binding:"required"`
	Category     string                `json:"category" binding:"required"`
	QuestionType string                `json:"question_type" binding:"required"`
	Deadline     time.Time             `json:"deadline" binding:"required"`
	Featured     bool                  `json:"featured"`
	Choices      []CreateChoiceRequest `json:"choices"`
}

type CreateChoiceRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateQuestionRequest struct {
	Text     *string                `json:"text"`
	Status   *string                `json:"status"`
	Deadline *time.Time             `json:"deadline"`
	Featured *bool                  `json:"featured"`
	Choices  *[]CreateChoiceRequest `json:"choices"`
}

type ResolveQuestionRequest struct {
	CorrectAnswer string `json:"correct_answer" binding:"required"`
}

func validateQuestionShape(questionType string, choices []CreateChoiceRequest) error {
	switch questionType {
	case models.TypeYesNo:
		if len(choices) > 0 {
			return errors.New("yes_no questions cannot have choices")
		}
	case models.TypeMultipleChoice:
		if len(choices) == 0 {
			return errors.New("multiple_choice questions need at least one choice")
		}
		seen := make(map[string]bool, len(choices))
		for _, ch := range choices {
			if seen[ch.Text] {
				return fmt.Errorf("duplicate choice text %q", ch.Text)
			}
			seen[ch.Text] = true
		}
	default:
		return fmt.Errorf("unrecognized question type %q", questionType)
	}
	return nil
}

func validateCategory(category string) error {
	switch category {
	case models.CategoryPlayerStats, models.CategoryTeamStats, models.CategoryDraftPredictions:
		return nil
	}
	return fmt.Errorf("unrecognized category %q", category)
}

func (s *QuestionService) CreateQuestion(req *CreateQuestionRequest) (*models.Question, error) {
	if err := validateCategory(req.Category); err != nil {
		return nil, err
	}
	if err := validateQuestionShape(req.QuestionType, req.Choices); err != nil {
		return nil, err
	}

	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	question := models.Question{
		ID:           uuid.NewString(),
		Text:         req.Text,
		Category:     req.Category,
		Status:       models.StatusPending,
		Deadline:     req.Deadline,
		Featured:     req.Featured,
		QuestionType: req.QuestionType,
	}

	if err := tx.Create(&question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, chReq := range req.Choices {
		choice := models.Choice{
			ID:         uuid.NewString(),
			QuestionID: question.ID,
			Text:       chReq.Text,
		}
		if err := tx.Create(&choice).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.audit.Record("question_created", map[string]string{"question_id": question.ID})

	return s.GetQuestionByID(question.ID)
}

// ListQuestions returns all questions with choices loaded, featured first,
// most recent deadline first (the display ordering both lists rely on).
func (s *QuestionService) ListQuestions() ([]models.Question, error) {
	var questions []models.Question
	err := s.db.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.created_at")
		}).
		Order("featured DESC").
		Order("deadline DESC").
		Find(&questions).Error
	return questions, err
}

func (s *QuestionService) GetQuestionByID(questionID string) (*models.Question, error) {
	var question models.Question
	err := s.db.
		Preload("Choices", func(db *gorm.DB) *gorm.DB {
			return db.Order("choices.created_at")
		}).
		First(&question, "id = ?", questionID).Error
	return &question, err
}

func (s *QuestionService) UpdateQuestion(questionID string, req *UpdateQuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		switch *req.Status {
		case models.StatusLive, models.StatusPending, models.StatusCompleted:
		default:
			return nil, fmt.Errorf("unrecognized status %q", *req.Status)
		}
	}
	if req.Choices != nil {
		if err := validateQuestionShape(question.QuestionType, *req.Choices); err != nil {
			return nil, err
		}
	}

	// Start transaction
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if req.Text != nil {
		question.Text = *req.Text
	}
	if req.Status != nil {
		question.Status = *req.Status
	}
	if req.Deadline != nil {
		question.Deadline = *req.Deadline
	}
	if req.Featured != nil {
		question.Featured = *req.Featured
	}

	question.Choices = nil
	if err := tx.Save(question).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// If choices are provided, replace the existing set
	if req.Choices != nil {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Choice{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}

		for _, chReq := range *req.Choices {
			choice := models.Choice{
				ID:         uuid.NewString(),
				QuestionID: question.ID,
				Text:       chReq.Text,
			}
			if err := tx.Create(&choice).Error; err != nil {
				tx.Rollback()
				return nil, err
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.audit.Record("question_updated", map[string]string{"question_id": questionID})

	return s.GetQuestionByID(questionID)
}

// ResolveQuestion marks a question completed and records the correct answer.
// Grading of predictions against it is not implemented; points stay unset.
func (s *QuestionService) ResolveQuestion(questionID string, req *ResolveQuestionRequest) (*models.Question, error) {
	question, err := s.GetQuestionByID(questionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":         models.StatusCompleted,
		"correct_answer": req.CorrectAnswer,
	}
	if err := s.db.Model(&models.Question{}).Where("id = ?", question.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	s.audit.Record("question_resolved", map[string]string{
		"question_id":    questionID,
		"correct_answer": req.CorrectAnswer,
	})

	return s.GetQuestionByID(questionID)
}

func (s *QuestionService) DeleteQuestion(questionID string) error {
	if _, err := s.GetQuestionByID(questionID); err != nil {
		return err
	}

	s.audit.Record("question_deleted", map[string]string{"question_id": questionID})

	return s.db.Delete(&models.Question{}, "id = ?", questionID).Error
}
