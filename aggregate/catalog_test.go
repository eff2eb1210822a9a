package aggregate

import (
	"errors"
	"testing"
	"time"

	"predictrack/models"
)

func yesNoQuestion(id string, featured bool, deadline time.Time) models.Question {
	return models.Question{
		ID:           id,
		Text:         "Will the Bears make the playoffs?",
		Category:     models.CategoryTeamStats,
		Status:       models.StatusLive,
		Deadline:     deadline,
		Featured:     featured,
		QuestionType: models.TypeYesNo,
	}
}

func choiceQuestion(id string, deadline time.Time, choices ...string) models.Question {
	q := models.Question{
		ID:           id,
		Text:         "Who leads the team in receiving yards?",
		Category:     models.CategoryPlayerStats,
		Status:       models.StatusLive,
		Deadline:     deadline,
		QuestionType: models.TypeMultipleChoice,
	}
	for i, text := range choices {
		q.Choices = append(q.Choices, models.Choice{ID: string(rune('a' + i)), QuestionID: id, Text: text})
	}
	return q
}

func TestBuildCatalogOrdering(t *testing.T) {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	questions := []models.Question{
		yesNoQuestion("q-old", false, base.Add(-48*time.Hour)),
		yesNoQuestion("q-featured-old", true, base.Add(-72*time.Hour)),
		yesNoQuestion("q-new", false, base.Add(24*time.Hour)),
		yesNoQuestion("q-featured-new", true, base.Add(12*time.Hour)),
	}

	catalog, err := BuildCatalog(questions)
	if err != nil {
		t.Fatalf("BuildCatalog returned error: %v", err)
	}

	want := []string{"q-featured-new", "q-featured-old", "q-new", "q-old"}
	ordered := catalog.Ordered()
	if len(ordered) != len(want) {
		t.Fatalf("got %d questions, want %d", len(ordered), len(want))
	}
	for i, q := range ordered {
		if q.ID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, q.ID, want[i])
		}
	}
}

func TestBuildCatalogValidation(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		mutate   func(*models.Question)
		wantBadQ bool
	}{
		{
			name:   "valid yes_no",
			mutate: func(q *models.Question) {},
		},
		{
			name:     "unrecognized category",
			mutate:   func(q *models.Question) { q.Category = "coach_stats" },
			wantBadQ: true,
		},
		{
			name:     "unrecognized status",
			mutate:   func(q *models.Question) { q.Status = "archived" },
			wantBadQ: true,
		},
		{
			name:     "unrecognized type",
			mutate:   func(q *models.Question) { q.QuestionType = "ranked" },
			wantBadQ: true,
		},
		{
			name: "yes_no with choices",
			mutate: func(q *models.Question) {
				q.Choices = []models.Choice{{ID: "c1", Text: "Yes"}}
			},
			wantBadQ: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := yesNoQuestion("q1", false, deadline)
			tt.mutate(&q)

			catalog, err := BuildCatalog([]models.Question{q})

			if !tt.wantBadQ {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if catalog.Len() != 1 {
					t.Errorf("got %d questions, want 1", catalog.Len())
				}
				return
			}

			var catErr *CatalogError
			if !errors.As(err, &catErr) {
				t.Fatalf("expected *CatalogError, got %v", err)
			}
			if len(catErr.Invalid) != 1 || catErr.Invalid[0].QuestionID != "q1" {
				t.Errorf("error does not name offending question: %+v", catErr.Invalid)
			}
			if catalog.Len() != 0 {
				t.Errorf("invalid question loaded into catalog")
			}
		})
	}
}

func TestBuildCatalogMultipleChoiceRules(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	empty := choiceQuestion("q-empty", deadline)
	dup := choiceQuestion("q-dup", deadline, "Caleb Williams", "Caleb Williams")
	ok := choiceQuestion("q-ok", deadline, "Caleb Williams", "Rome Odunze")

	catalog, err := BuildCatalog([]models.Question{empty, dup, ok})

	var catErr *CatalogError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected *CatalogError, got %v", err)
	}
	if len(catErr.Invalid) != 2 {
		t.Fatalf("got %d validation errors, want 2: %v", len(catErr.Invalid), catErr)
	}

	// Valid questions still load despite siblings failing validation.
	if catalog.Len() != 1 {
		t.Fatalf("got %d valid questions, want 1", catalog.Len())
	}
	if _, found := catalog.Question("q-ok"); !found {
		t.Error("valid question missing from catalog")
	}
}

func TestAnswers(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	yn := Answers(yesNoQuestion("q1", false, deadline))
	if len(yn) != 2 || yn[0] != AnswerYes || yn[1] != AnswerNo {
		t.Errorf("yes_no answers = %v, want [yes no]", yn)
	}

	mc := Answers(choiceQuestion("q2", deadline, "A", "B", "C"))
	if len(mc) != 3 || mc[0] != "A" || mc[1] != "B" || mc[2] != "C" {
		t.Errorf("multiple_choice answers = %v, want [A B C]", mc)
	}
}
