package models

import (
	"time"

	"gorm.io/gorm"
)

type Choice struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid"`
	QuestionID string `json:"question_id" gorm:"not null;index"`
	Text       string `json:"text" gorm:"not null"`
	// Denormalized tally cache maintained by the store; the aggregate
	// package recomputes counts from raw rows and never trusts this.
	PredictionCount int            `json:"prediction_count" gorm:"not null;default:0"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Question Question `json:"question,omitempty"`
}
