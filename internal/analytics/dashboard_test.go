package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

func TestDashboardComposesAllSections(t *testing.T) {
	bundle := model.StatementBundle{
		Completions: []model.Statement{
			stmt(xapi.VerbCompleted, "mod/a", xapi.TypeModule, at(1, 9)),
			stmt(xapi.VerbCompleted, "mod/b", xapi.TypeModule, at(2, 9)),
		},
		Quizzes: []model.Statement{
			scored("quiz/a", 0.85, true, at(2, 10)),
		},
	}
	got, err := testEngine().Dashboard(bundle, at(2, 12))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Overview.TotalStatements != 3 {
		t.Fatalf("expected 3 statements, got %d", got.Overview.TotalStatements)
	}
	if got.Progress.Completed != 2 {
		t.Fatalf("expected 2 completions, got %d", got.Progress.Completed)
	}
	if len(got.Scores.Scores) != 1 || got.Scores.Scores[0].Score != 85 {
		t.Fatalf("unexpected scores: %+v", got.Scores)
	}
	if len(got.Timeline) != 2 {
		t.Fatalf("expected 2 timeline days, got %d", len(got.Timeline))
	}
	if got.Engagement.ActiveDays != 2 {
		t.Fatalf("expected 2 active days, got %d", got.Engagement.ActiveDays)
	}
	if len(got.Charts.GradeDistribution.Labels) != 5 {
		t.Fatalf("expected 5 grade labels, got %v", got.Charts.GradeDistribution.Labels)
	}
}

func TestDashboardScoresOnlyQuizAndAssignment(t *testing.T) {
	// A scaled score on a module must not enter score aggregation.
	scaled := 0.5
	module := xapi.New(xapi.Options{
		ActorMbox:  "mailto:sam@example.com",
		VerbID:     xapi.VerbScored,
		ObjectID:   "mod/a",
		ObjectType: xapi.TypeModule,
		Scaled:     &scaled,
		Timestamp:  at(1, 9),
	})
	got, err := testEngine().DashboardFromPool([]model.Statement{module}, false, at(1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Scores.TotalAttempts != 0 {
		t.Fatalf("expected no scored attempts, got %d", got.Scores.TotalAttempts)
	}
}

func TestDashboardLenientSkipsInvalid(t *testing.T) {
	pool := []model.Statement{
		stmt(xapi.VerbExperienced, "act/1", xapi.TypeModule, at(1, 9)),
		{Verb: model.Verb{ID: xapi.VerbExperienced}}, // no actor, no object
	}
	got, err := testEngine().DashboardFromPool(pool, false, at(1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Overview.TotalStatements != 1 || got.Overview.SkippedStatements != 1 {
		t.Fatalf("expected 1 kept and 1 skipped, got %+v", got.Overview)
	}
}

func TestDashboardStrictAborts(t *testing.T) {
	eng := testEngine()
	eng.Strict = true
	pool := []model.Statement{{Verb: model.Verb{ID: xapi.VerbExperienced}}}
	_, err := eng.DashboardFromPool(pool, false, at(1, 10))
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
	if !strings.Contains(err.Error(), "actor") {
		t.Fatalf("expected actor in error, got %v", err)
	}
}

func TestDashboardEmptyInput(t *testing.T) {
	got, err := testEngine().DashboardFromPool(nil, false, at(1, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Overview.DataQuality != 0 || got.Overview.Freshness != 0 {
		t.Fatalf("expected zero quality for empty input, got %+v", got.Overview)
	}
	if got.Scores.Trend != model.TrendStable {
		t.Fatalf("expected stable trend, got %s", got.Scores.Trend)
	}
}

func TestFreshnessDecay(t *testing.T) {
	last := at(1, 9)
	lastPtr := &last
	cases := []struct {
		now  time.Time
		want int
	}{
		{at(1, 9), 100},
		{at(8, 9), 100},
		{last.AddDate(0, 0, 9), 80},
		{last.AddDate(0, 0, 30), 0},
	}
	for _, tc := range cases {
		_, fresh := quality([]model.Statement{stmt(xapi.VerbExperienced, "a", xapi.TypeModule, last)}, lastPtr, tc.now)
		if fresh != tc.want {
			t.Fatalf("freshness at %v: expected %d, got %d", tc.now, tc.want, fresh)
		}
	}
}

func TestInsightsSortedByPriority(t *testing.T) {
	// Low progress (high) plus no streak (low).
	pool := []model.Statement{
		stmt(xapi.VerbExperienced, "act/1", xapi.TypeModule, at(1, 9)),
		stmt(xapi.VerbExperienced, "act/2", xapi.TypeModule, at(1, 10)),
	}
	got, err := testEngine().DashboardFromPool(pool, false, at(20, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Insights) < 2 {
		t.Fatalf("expected at least 2 insights, got %d", len(got.Insights))
	}
	for i := 1; i < len(got.Insights); i++ {
		if got.Insights[i].Priority.Rank() > got.Insights[i-1].Priority.Rank() {
			t.Fatalf("insights not sorted by priority: %+v", got.Insights)
		}
	}
	if got.Insights[0].Category != "progress" || got.Insights[0].Type != "warning" {
		t.Fatalf("expected low-completion warning first, got %+v", got.Insights[0])
	}
}
