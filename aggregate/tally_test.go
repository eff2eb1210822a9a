package aggregate

import (
	"testing"
	"time"

	"predictrack/models"
)

func mustCatalog(t *testing.T, questions ...models.Question) *Catalog {
	t.Helper()
	catalog, err := BuildCatalog(questions)
	if err != nil {
		t.Fatalf("BuildCatalog: %v", err)
	}
	return catalog
}

func checkTallyInvariant(t *testing.T, tally Tally) {
	t.Helper()
	sum := 0
	for _, n := range tally.Counts {
		sum += n
	}
	if sum != tally.Total {
		t.Errorf("bucket sum %d != total %d", sum, tally.Total)
	}
}

func TestCountVotesYesNoCaseFolding(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	catalog := mustCatalog(t, yesNoQuestion("Q1", false, deadline))

	rows := []VoteRow{
		{QuestionID: "Q1", Prediction: "Yes"},
		{QuestionID: "Q1", Prediction: "no"},
		{QuestionID: "Q1", Prediction: "YES"},
	}

	tallies := CountVotes(catalog, rows)
	tally := tallies["Q1"]

	if tally.Counts[AnswerYes] != 2 || tally.Counts[AnswerNo] != 1 || tally.Total != 3 {
		t.Errorf("got yes=%d no=%d total=%d, want yes=2 no=1 total=3",
			tally.Counts[AnswerYes], tally.Counts[AnswerNo], tally.Total)
	}
	checkTallyInvariant(t, tally)
}

func TestCountVotesSkipsIllegalChoice(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	catalog := mustCatalog(t, choiceQuestion("Q2", deadline, "A", "B"))

	rows := []VoteRow{
		{QuestionID: "Q2", Prediction: "A"},
		{QuestionID: "Q2", Prediction: "C"}, // stale choice text, not a legal bucket
	}

	tally := CountVotes(catalog, rows)["Q2"]
	if tally.Counts["A"] != 1 || tally.Counts["B"] != 0 || tally.Total != 1 {
		t.Errorf("got A=%d B=%d total=%d, want A=1 B=0 total=1",
			tally.Counts["A"], tally.Counts["B"], tally.Total)
	}
	checkTallyInvariant(t, tally)
}

func TestCountVotesChoiceMatchingIsCaseSensitive(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	catalog := mustCatalog(t, choiceQuestion("Q2", deadline, "Caleb Williams"))

	tally := CountVotes(catalog, []VoteRow{{QuestionID: "Q2", Prediction: "caleb williams"}})["Q2"]
	if tally.Total != 0 {
		t.Errorf("case-folded choice text was counted, total=%d", tally.Total)
	}
}

func TestCountVotesSkipsUnknownQuestion(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	catalog := mustCatalog(t, yesNoQuestion("Q1", false, deadline))

	rows := []VoteRow{
		{QuestionID: "Q1", Prediction: "yes"},
		{QuestionID: "Q-missing", Prediction: "yes"},
	}

	tallies := CountVotes(catalog, rows)
	if _, exists := tallies["Q-missing"]; exists {
		t.Error("unknown question appears in output")
	}
	if tallies["Q1"].Total != 1 {
		t.Errorf("Q1 total = %d, want 1", tallies["Q1"].Total)
	}
}

func TestCountVotesZeroInitializesAllBuckets(t *testing.T) {
	deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	catalog := mustCatalog(t,
		yesNoQuestion("Q1", false, deadline),
		choiceQuestion("Q2", deadline, "A", "B", "C"),
	)

	tallies := CountVotes(catalog, nil)

	q1 := tallies["Q1"]
	if len(q1.Counts) != 2 || q1.Counts[AnswerYes] != 0 || q1.Counts[AnswerNo] != 0 || q1.Total != 0 {
		t.Errorf("un-voted yes_no tally = %+v, want zeroed yes/no buckets", q1)
	}

	q2 := tallies["Q2"]
	if len(q2.Counts) != 3 || q2.Total != 0 {
		t.Errorf("un-voted multiple_choice tally = %+v, want 3 zeroed buckets", q2)
	}
	for _, answer := range []string{"A", "B", "C"} {
		if n, ok := q2.Counts[answer]; !ok || n != 0 {
			t.Errorf("bucket %q = %d (present=%v), want 0", answer, n, ok)
		}
	}
}
