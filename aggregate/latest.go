package aggregate

import (
	"sort"

	"predictrack/models"
)

// CurrentAnswer is a user's effective answer to one question after
// latest-wins collapse.
type CurrentAnswer struct {
	ID         string `json:"id"`
	Prediction string `json:"prediction"`
	Confidence string `json:"confidence"`
}

// ReduceLatest collapses a user's prediction history to one current answer
// per question. The store upserts on (user_id, question_id) so duplicates
// should not happen, but client races and migration leftovers do produce
// them, so the reduction is defensive: rows are sorted newest first and only
// the first row per question survives. Equal timestamps are broken by the
// lexicographically greater record id, which keeps repeated runs over the
// same data deterministic.
//
// Returns the current-answer map keyed by question id plus the deduplicated
// rows (newest first) for consumers that need full record detail.
func ReduceLatest(rows []models.Prediction) (map[string]CurrentAnswer, []models.Prediction) {
	sorted := make([]models.Prediction, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	current := make(map[string]CurrentAnswer)
	var deduped []models.Prediction
	for _, row := range sorted {
		if _, seen := current[row.QuestionID]; seen {
			continue
		}
		current[row.QuestionID] = CurrentAnswer{
			ID:         row.ID,
			Prediction: row.Prediction,
			Confidence: row.Confidence,
		}
		deduped = append(deduped, row)
	}

	return current, deduped
}
