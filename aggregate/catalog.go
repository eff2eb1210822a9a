package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"predictrack/models"
)

// Answer values for yes/no questions. Stored predictions are case-folded
// against these before bucketing.
const (
	AnswerYes = "yes"
	AnswerNo  = "no"
)

// ValidationError describes a single malformed question row.
type ValidationError struct {
	QuestionID string
	Reason     string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("question %s: %s", e.QuestionID, e.Reason)
}

// CatalogError collects every malformed question found while building a
// catalog. Valid questions are still loaded; callers surface this error as a
// data-quality report rather than aborting.
type CatalogError struct {
	Invalid []ValidationError
}

func (e *CatalogError) Error() string {
	msgs := make([]string, len(e.Invalid))
	for i, ve := range e.Invalid {
		msgs[i] = ve.Error()
	}
	return "invalid questions: " + strings.Join(msgs, "; ")
}

// Catalog is a normalized, point-in-time view of the question table keyed by
// question id, with a stable display ordering: featured questions first, then
// most recent deadline first.
type Catalog struct {
	byID  map[string]models.Question
	order []string
}

// BuildCatalog normalizes raw question rows into a Catalog. Questions with an
// unrecognized category, status, or type, and multiple-choice questions with
// no choices (or duplicate choice texts), are reported in a *CatalogError and
// left out of the catalog; everything else loads normally.
func BuildCatalog(questions []models.Question) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]models.Question, len(questions))}
	var invalid []ValidationError

	for _, q := range questions {
		if reason := validateQuestion(q); reason != "" {
			invalid = append(invalid, ValidationError{QuestionID: q.ID, Reason: reason})
			continue
		}
		c.byID[q.ID] = q
		c.order = append(c.order, q.ID)
	}

	sort.SliceStable(c.order, func(i, j int) bool {
		a, b := c.byID[c.order[i]], c.byID[c.order[j]]
		if a.Featured != b.Featured {
			return a.Featured
		}
		return a.Deadline.After(b.Deadline)
	})

	if len(invalid) > 0 {
		return c, &CatalogError{Invalid: invalid}
	}
	return c, nil
}

func validateQuestion(q models.Question) string {
	switch q.Category {
	case models.CategoryPlayerStats, models.CategoryTeamStats, models.CategoryDraftPredictions:
	default:
		return fmt.Sprintf("unrecognized category %q", q.Category)
	}

	switch q.Status {
	case models.StatusLive, models.StatusPending, models.StatusCompleted:
	default:
		return fmt.Sprintf("unrecognized status %q", q.Status)
	}

	switch q.QuestionType {
	case models.TypeYesNo:
		if len(q.Choices) > 0 {
			return "yes_no question carries choices"
		}
	case models.TypeMultipleChoice:
		if len(q.Choices) == 0 {
			return "multiple_choice question has no choices"
		}
		seen := make(map[string]bool, len(q.Choices))
		for _, ch := range q.Choices {
			if seen[ch.Text] {
				return fmt.Sprintf("duplicate choice text %q", ch.Text)
			}
			seen[ch.Text] = true
		}
	default:
		return fmt.Sprintf("unrecognized question type %q", q.QuestionType)
	}

	return ""
}

// Question returns the catalog entry for id.
func (c *Catalog) Question(id string) (models.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// Ordered returns the questions in display order.
func (c *Catalog) Ordered() []models.Question {
	out := make([]models.Question, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len reports how many valid questions the catalog holds.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// Answers lists the legal answer values for a question: yes/no for yes_no
// questions, each choice's text (in stored order) for multiple_choice.
func Answers(q models.Question) []string {
	if q.QuestionType == models.TypeYesNo {
		return []string{AnswerYes, AnswerNo}
	}
	answers := make([]string, 0, len(q.Choices))
	for _, ch := range q.Choices {
		answers = append(answers, ch.Text)
	}
	return answers
}
