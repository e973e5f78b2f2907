package analytics

import (
	"testing"

	"github.com/edmetric/lrslens/internal/model"
)

func TestScoresEmptyInput(t *testing.T) {
	got := testEngine().Scores(nil)
	if got.Average != 0 || got.TotalAttempts != 0 || got.Trend != model.TrendStable {
		t.Fatalf("expected zero summary with stable trend, got %+v", got)
	}
}

func TestScoresCanonicalRecordPerActivity(t *testing.T) {
	stmts := []model.Statement{
		scored("quiz/a", 0.60, false, at(1, 9)),
		scored("quiz/a", 0.90, true, at(2, 9)),
		scored("quiz/a", 0.75, true, at(1, 12)),
		scored("quiz/b", 0.80, true, at(3, 9)),
	}
	got := testEngine().Scores(stmts)
	if len(got.Scores) != 2 {
		t.Fatalf("expected 2 canonical records, got %d", len(got.Scores))
	}
	// Newest-first: quiz/b on day 3, then quiz/a whose latest attempt is day 2.
	if got.Scores[0].ActivityID != "quiz/b" {
		t.Fatalf("expected quiz/b first, got %s", got.Scores[0].ActivityID)
	}
	a := got.Scores[1]
	if a.Score != 90 || a.BestScore != 90 || a.Attempts != 3 || !a.Success {
		t.Fatalf("unexpected canonical record for quiz/a: %+v", a)
	}
	if !a.FirstAttempt.Equal(at(1, 9)) {
		t.Fatalf("expected first attempt %v, got %v", at(1, 9), a.FirstAttempt)
	}
	if got.TotalAttempts != 4 {
		t.Fatalf("expected 4 total attempts, got %d", got.TotalAttempts)
	}
	if got.Average != 85 || got.Highest != 90 || got.Lowest != 80 {
		t.Fatalf("expected avg 85 high 90 low 80, got %d/%d/%d", got.Average, got.Highest, got.Lowest)
	}
	if got.PassRate != 100 {
		t.Fatalf("expected pass rate 100, got %d", got.PassRate)
	}
}

func TestScoresTrendStableUnderTwoRecords(t *testing.T) {
	stmts := []model.Statement{scored("quiz/a", 1.0, true, at(1, 9))}
	if got := testEngine().Scores(stmts).Trend; got != model.TrendStable {
		t.Fatalf("expected stable trend for single record, got %s", got)
	}
}

func TestScoresTrendImprovingAndDeclining(t *testing.T) {
	up := []model.Statement{
		scored("q/1", 0.50, false, at(1, 9)),
		scored("q/2", 0.55, false, at(2, 9)),
		scored("q/3", 0.90, true, at(3, 9)),
		scored("q/4", 0.95, true, at(4, 9)),
	}
	if got := testEngine().Scores(up).Trend; got != model.TrendImproving {
		t.Fatalf("expected improving, got %s", got)
	}
	down := []model.Statement{
		scored("q/1", 0.95, true, at(1, 9)),
		scored("q/2", 0.90, true, at(2, 9)),
		scored("q/3", 0.55, false, at(3, 9)),
		scored("q/4", 0.50, false, at(4, 9)),
	}
	if got := testEngine().Scores(down).Trend; got != model.TrendDeclining {
		t.Fatalf("expected declining, got %s", got)
	}
}

func TestScoresDistributionCountsEveryAttempt(t *testing.T) {
	stmts := []model.Statement{
		scored("quiz/a", 0.55, false, at(1, 9)),
		scored("quiz/a", 0.95, true, at(2, 9)),
		scored("quiz/b", 0.72, true, at(3, 9)),
		scored("quiz/c", 0.85, true, at(4, 9)),
		scored("quiz/d", 0.60, false, at(5, 9)),
	}
	got := testEngine().Scores(stmts)
	want := map[string]int{"A": 1, "B": 1, "C": 1, "D": 1, "F": 1}
	for g, n := range want {
		if got.Distribution[g] != n {
			t.Fatalf("grade %s: expected %d, got %d", g, n, got.Distribution[g])
		}
	}
}
