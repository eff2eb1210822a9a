package models

import (
	"time"

	"gorm.io/gorm"
)

// Confidence levels
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

type Prediction struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid"`
	UserID     string `json:"user_id" gorm:"not null;uniqueIndex:idx_user_question"`
	QuestionID string `json:"question_id" gorm:"not null;uniqueIndex:idx_user_question"`
	Prediction string `json:"prediction" gorm:"not null"`
	Confidence string `json:"confidence" gorm:"not null"` // low, medium, high
	// Stays nil until the question resolves; grading is not implemented yet.
	PointsEarned *int           `json:"points_earned"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	User     User     `json:"user,omitempty"`
	Question Question `json:"question,omitempty"`
}
