package aggregate

import (
	"reflect"
	"testing"
	"time"

	"predictrack/models"
)

func predictionRow(id, questionID, value string, createdAt time.Time) models.Prediction {
	return models.Prediction{
		ID:         id,
		UserID:     "user-1",
		QuestionID: questionID,
		Prediction: value,
		Confidence: models.ConfidenceMedium,
		CreatedAt:  createdAt,
	}
}

func TestReduceLatestKeepsNewestRow(t *testing.T) {
	t1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	rows := []models.Prediction{
		predictionRow("p1", "Q1", "yes", t1),
		predictionRow("p2", "Q1", "no", t2),
	}

	current, deduped := ReduceLatest(rows)

	answer, ok := current["Q1"]
	if !ok {
		t.Fatal("Q1 missing from current-answer map")
	}
	if answer.ID != "p2" || answer.Prediction != "no" {
		t.Errorf("current answer = %+v, want p2/no", answer)
	}
	if len(deduped) != 1 || deduped[0].ID != "p2" {
		t.Errorf("deduped rows = %v, want just p2", deduped)
	}
}

func TestReduceLatestTieBreaksOnGreaterID(t *testing.T) {
	ts := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	rows := []models.Prediction{
		predictionRow("aaa", "Q1", "yes", ts),
		predictionRow("zzz", "Q1", "no", ts),
	}

	// Same outcome regardless of input order.
	for run := 0; run < 2; run++ {
		current, _ := ReduceLatest(rows)
		if current["Q1"].ID != "zzz" {
			t.Errorf("run %d: tie-break picked %s, want zzz", run, current["Q1"].ID)
		}
		rows[0], rows[1] = rows[1], rows[0]
	}
}

func TestReduceLatestIsIdempotent(t *testing.T) {
	t1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	rows := []models.Prediction{
		predictionRow("p1", "Q1", "yes", t1),
		predictionRow("p2", "Q1", "no", t1.Add(time.Minute)),
		predictionRow("p3", "Q2", "A", t1.Add(2*time.Minute)),
	}

	first, firstRows := ReduceLatest(rows)
	second, secondRows := ReduceLatest(rows)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("current-answer maps differ between runs: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(firstRows, secondRows) {
		t.Errorf("deduplicated rows differ between runs")
	}
}

func TestReduceLatestOneAnswerPerQuestion(t *testing.T) {
	t1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	rows := []models.Prediction{
		predictionRow("p1", "Q1", "yes", t1),
		predictionRow("p2", "Q1", "no", t1.Add(time.Minute)),
		predictionRow("p3", "Q1", "yes", t1.Add(2*time.Minute)),
		predictionRow("p4", "Q2", "A", t1),
	}

	current, deduped := ReduceLatest(rows)

	if len(current) != 2 {
		t.Errorf("got %d current answers, want 2", len(current))
	}
	if len(deduped) != 2 {
		t.Errorf("got %d deduplicated rows, want 2", len(deduped))
	}
	if current["Q1"].ID != "p3" {
		t.Errorf("Q1 current answer = %s, want p3", current["Q1"].ID)
	}
}

func TestReduceLatestEmptyInput(t *testing.T) {
	current, deduped := ReduceLatest(nil)
	if len(current) != 0 || len(deduped) != 0 {
		t.Errorf("empty input produced current=%v deduped=%v", current, deduped)
	}
}
