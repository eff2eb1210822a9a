package aggregate

import (
	"time"

	"predictrack/models"
)

// Summary holds a user's headline numbers for the dashboard.
type Summary struct {
	TotalPredictions    int `json:"total_predictions"`
	UpcomingPredictions int `json:"upcoming_predictions"`
	TotalPoints         int `json:"total_points"`
	// CorrectPredictions is a placeholder kept for output-shape stability;
	// grading is not implemented, so it is always 0.
	CorrectPredictions int `json:"correct_predictions"`
}

// Summarize derives summary counters from a user's deduplicated prediction
// rows (the second return of ReduceLatest). A nil PointsEarned counts as 0.
// A prediction is "upcoming" when its question's deadline is after now; now
// is caller-supplied so results are reproducible in tests. Rows naming a
// question missing from the catalog still count toward totals but are never
// upcoming.
func Summarize(rows []models.Prediction, catalog *Catalog, now time.Time) Summary {
	s := Summary{TotalPredictions: len(rows)}

	for _, row := range rows {
		if row.PointsEarned != nil {
			s.TotalPoints += *row.PointsEarned
		}
		if q, ok := catalog.Question(row.QuestionID); ok && q.Deadline.After(now) {
			s.UpcomingPredictions++
		}
	}

	return s
}
