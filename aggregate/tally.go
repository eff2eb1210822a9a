package aggregate

import (
	"strings"

	"predictrack/models"
)

// VoteRow is the minimal prediction shape the tally needs. Callers are
// expected to feed exactly one row per user/question pair (see ReduceLatest).
type VoteRow struct {
	QuestionID string `json:"question_id"`
	Prediction string `json:"prediction"`
}

// Tally holds per-answer counts for one question. Sum of Counts always
// equals Total.
type Tally struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// CountVotes folds raw prediction rows into one Tally per catalog question.
// Every legal answer gets a zero bucket up front so un-voted questions still
// render complete 0% bars. Rows naming a question absent from the catalog,
// and values matching no legal bucket (stale choice text after an admin
// edit), are skipped silently: both reflect normal skew between collections
// that evolve independently, not corruption. Yes/no values are case-folded
// before bucketing; choice texts are admin-controlled and matched exactly.
func CountVotes(catalog *Catalog, rows []VoteRow) map[string]Tally {
	tallies := make(map[string]Tally, catalog.Len())

	for _, q := range catalog.Ordered() {
		t := Tally{Counts: make(map[string]int)}
		for _, answer := range Answers(q) {
			t.Counts[answer] = 0
		}
		tallies[q.ID] = t
	}

	for _, row := range rows {
		q, ok := catalog.Question(row.QuestionID)
		if !ok {
			continue
		}

		value := row.Prediction
		if q.QuestionType == models.TypeYesNo {
			value = strings.ToLower(value)
		}

		t := tallies[row.QuestionID]
		if _, legal := t.Counts[value]; !legal {
			continue
		}
		t.Counts[value]++
		t.Total++
		tallies[row.QuestionID] = t
	}

	return tallies
}
