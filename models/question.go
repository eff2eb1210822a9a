package models

import (
	"time"

	"gorm.io/gorm"
)

// Question categories
const (
	CategoryPlayerStats      = "player_stats"
	CategoryTeamStats        = "team_stats"
	CategoryDraftPredictions = "draft_predictions"
)

// Question statuses
const (
	StatusLive      = "live"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Question types
const (
	TypeYesNo          = "yes_no"
	TypeMultipleChoice = "multiple_choice"
)

type Question struct {
	ID            string         `json:"id" gorm:"primaryKey;type:uuid"`
	Text          string         `json:"text" gorm:"not null"`
	Category      string         `json:"category" gorm:"not null"` // player_stats, team_stats, draft_predictions
	Status        string         `json:"status" gorm:"not null;default:'pending'"`
	Deadline      time.Time      `json:"deadline" gorm:"not null"`
	Featured      bool           `json:"featured" gorm:"not null;default:false"`
	QuestionType  string         `json:"question_type" gorm:"not null"` // yes_no, multiple_choice
	CorrectAnswer *string        `json:"correct_answer,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Choices []Choice `json:"choices,omitempty" gorm:"foreignKey:QuestionID"`
}
