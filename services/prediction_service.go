package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"predictrack/aggregate"
	"predictrack/auditlog"
	"predictrack/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	aggregatesCacheKey = "aggregates:all"
	aggregatesCacheTTL = 30 * time.Second
)

type PredictionService struct {
	db    *gorm.DB
	redis *redis.Client
	audit *auditlog.Log
}

func NewPredictionService(db *gorm.DB, redis *redis.Client, audit *auditlog.Log) *PredictionService {
	return &PredictionService{db: db, redis: redis, audit: audit}
}

type SubmitPredictionRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	Prediction string `json:"prediction" binding:"required"`
	Confidence string `json:"confidence" binding:"required,oneof=low medium high"`
}

// QuestionAggregate is the community-sentiment view for one question.
type QuestionAggregate struct {
	Tally       aggregate.Tally `json:"tally"`
	Percentages map[string]int  `json:"percentages"`
}

// UserPredictionView is everything the dashboard needs for one user.
type UserPredictionView struct {
	Current     map[string]aggregate.CurrentAnswer `json:"current"`
	Predictions []models.Prediction                `json:"predictions"`
	Summary     aggregate.Summary                  `json:"summary"`
}

// SubmitPrediction records or revises a user's answer to a question. The row
// is upserted on (user_id, question_id) so rapid double-submission collapses
// to one live row. Submissions after the deadline are rejected.
func (s *PredictionService) SubmitPrediction(userID string, req *SubmitPredictionRequest, hub *Hub) (*models.Prediction, error) {
	var question models.Question
	if err := s.db.Preload("Choices").First(&question, "id = ?", req.QuestionID).Error; err != nil {
		return nil, errors.New("question not found")
	}

	if time.Now().After(question.Deadline) {
		return nil, errors.New("the deadline for this prediction has passed")
	}

	if !legalAnswer(question, req.Prediction) {
		return nil, fmt.Errorf("%q is not a valid answer for this question", req.Prediction)
	}

	prediction := models.Prediction{
		ID:         uuid.NewString(),
		UserID:     userID,
		QuestionID: req.QuestionID,
		Prediction: req.Prediction,
		Confidence: req.Confidence,
		CreatedAt:  time.Now(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"prediction", "confidence", "created_at", "updated_at"}),
	}).Create(&prediction).Error
	if err != nil {
		return nil, err
	}

	// The upsert may have kept the original row's id; read back the live row.
	var current models.Prediction
	if err := s.db.Where("user_id = ? AND question_id = ?", userID, req.QuestionID).First(&current).Error; err != nil {
		return nil, err
	}

	s.invalidateAggregates()
	s.audit.Record("prediction_submitted", map[string]string{
		"question_id": req.QuestionID,
		"user_id":     userID,
	})

	// Fan out fresh community sentiment to connected clients.
	if hub != nil {
		if aggregates, err := s.Aggregates(); err == nil {
			hub.Broadcast("prediction_update", map[string]interface{}{
				"question_id": req.QuestionID,
				"aggregates":  aggregates,
			})
		} else {
			log.Printf("Failed to compute aggregates for broadcast: %v", err)
		}
	}

	return &current, nil
}

func legalAnswer(question models.Question, value string) bool {
	if question.QuestionType == models.TypeYesNo {
		value = strings.ToLower(value)
	}
	for _, answer := range aggregate.Answers(question) {
		if value == answer {
			return true
		}
	}
	return false
}

// Aggregates recomputes community tallies and percentages for every question
// from raw prediction rows, with a short-lived Redis cache in front. The
// denormalized prediction_count on choices is never consulted.
func (s *PredictionService) Aggregates() (map[string]QuestionAggregate, error) {
	if cached := s.cachedAggregates(); cached != nil {
		return cached, nil
	}

	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	var rows []aggregate.VoteRow
	if err := s.db.Model(&models.Prediction{}).
		Select("question_id", "prediction").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	tallies := aggregate.CountVotes(catalog, rows)

	out := make(map[string]QuestionAggregate, len(tallies))
	for questionID, tally := range tallies {
		out[questionID] = QuestionAggregate{
			Tally:       tally,
			Percentages: aggregate.Percentages(tally),
		}
	}

	s.storeAggregates(out)
	return out, nil
}

// UserDashboard collapses the user's prediction history to current answers
// and derives summary stats. now is passed through to keep the derivation
// reproducible.
func (s *PredictionService) UserDashboard(userID string, now time.Time) (*UserPredictionView, error) {
	catalog, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	var rows []models.Prediction
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	current, deduped := aggregate.ReduceLatest(rows)
	summary := aggregate.Summarize(deduped, catalog, now)

	if deduped == nil {
		deduped = []models.Prediction{}
	}

	return &UserPredictionView{
		Current:     current,
		Predictions: deduped,
		Summary:     summary,
	}, nil
}

// loadCatalog builds the in-memory question catalog. Malformed questions are
// logged as a data-quality problem and skipped; the rest stay usable.
func (s *PredictionService) loadCatalog() (*aggregate.Catalog, error) {
	var questions []models.Question
	if err := s.db.Preload("Choices").Find(&questions).Error; err != nil {
		return nil, err
	}

	catalog, err := aggregate.BuildCatalog(questions)
	if err != nil {
		var catErr *aggregate.CatalogError
		if errors.As(err, &catErr) {
			log.Printf("Skipping %d malformed questions: %v", len(catErr.Invalid), catErr)
		} else {
			return nil, err
		}
	}
	return catalog, nil
}

func (s *PredictionService) cachedAggregates() map[string]QuestionAggregate {
	data, err := s.redis.Get(context.Background(), aggregatesCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error reading aggregates cache: %v", err)
		}
		return nil
	}

	var out map[string]QuestionAggregate
	if err := json.Unmarshal([]byte(data), &out); err != nil {
		log.Printf("Failed to unmarshal cached aggregates: %v", err)
		return nil
	}
	return out
}

func (s *PredictionService) storeAggregates(aggregates map[string]QuestionAggregate) {
	data, err := json.Marshal(aggregates)
	if err != nil {
		log.Printf("Failed to marshal aggregates for cache: %v", err)
		return
	}
	if err := s.redis.Set(context.Background(), aggregatesCacheKey, data, aggregatesCacheTTL).Err(); err != nil {
		log.Printf("Failed to store aggregates in Redis: %v", err)
	}
}

func (s *PredictionService) invalidateAggregates() {
	if err := s.redis.Del(context.Background(), aggregatesCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate aggregates cache: %v", err)
	}
}
