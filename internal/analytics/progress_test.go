package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

func testEngine() *Engine {
	return New(xapi.DefaultVocabulary())
}

func at(day, hour int) time.Time {
	return time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC)
}

func stmt(verbID, objectID, typeURI string, ts time.Time) model.Statement {
	return xapi.New(xapi.Options{
		ActorName:  "Sam Carter",
		ActorMbox:  "mailto:sam@example.com",
		VerbID:     verbID,
		ObjectID:   objectID,
		ObjectType: typeURI,
		Timestamp:  ts,
	})
}

func scored(objectID string, scaled float64, success bool, ts time.Time) model.Statement {
	return xapi.New(xapi.Options{
		ActorName:  "Sam Carter",
		ActorMbox:  "mailto:sam@example.com",
		VerbID:     xapi.VerbScored,
		ObjectID:   objectID,
		ObjectType: xapi.TypeAssessment,
		Scaled:     &scaled,
		Success:    &success,
		Timestamp:  ts,
	})
}

func TestProgressCountsUniqueActivities(t *testing.T) {
	// 10 statements, 6 completions, 8 distinct activities.
	var stmts []model.Statement
	for i := 0; i < 6; i++ {
		stmts = append(stmts, stmt(xapi.VerbCompleted, fmt.Sprintf("act/%d", i), xapi.TypeModule, at(1, 9+i)))
	}
	stmts = append(stmts,
		stmt(xapi.VerbExperienced, "act/6", xapi.TypeModule, at(1, 15)),
		stmt(xapi.VerbExperienced, "act/7", xapi.TypeModule, at(1, 16)),
		stmt(xapi.VerbExperienced, "act/0", xapi.TypeModule, at(1, 17)),
		stmt(xapi.VerbExperienced, "act/1", xapi.TypeModule, at(1, 18)),
	)

	got := testEngine().Progress(stmts)
	if got.Completed != 6 || got.Total != 8 || got.Percentage != 75 || got.Remaining != 2 {
		t.Fatalf("expected 6/8 at 75%% with 2 remaining, got %+v", got)
	}
	if got.Completed+got.Remaining != got.Total {
		t.Fatalf("completed %d + remaining %d != total %d", got.Completed, got.Remaining, got.Total)
	}
}

func TestProgressEmptyInput(t *testing.T) {
	got := testEngine().Progress(nil)
	if got.Total != 0 || got.Percentage != 0 || got.LastActivity != nil {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestProgressModuleCompletionsNewestFirst(t *testing.T) {
	stmts := []model.Statement{
		stmt(xapi.VerbCompleted, "mod/a", xapi.TypeModule, at(1, 9)),
		stmt(xapi.VerbCompleted, "mod/b", xapi.TypeModule, at(3, 9)),
		stmt(xapi.VerbCompleted, "mod/c", xapi.TypeModule, at(2, 9)),
		stmt(xapi.VerbCompleted, "quiz/a", xapi.TypeAssessment, at(4, 9)),
	}
	got := testEngine().Progress(stmts)
	if len(got.ModuleCompletions) != 3 {
		t.Fatalf("expected 3 module completions, got %d", len(got.ModuleCompletions))
	}
	if got.ModuleCompletions[0].ID != "mod/b" || got.ModuleCompletions[2].ID != "mod/a" {
		t.Fatalf("expected newest-first ordering, got %+v", got.ModuleCompletions)
	}
}

func TestProgressLastActivityIgnoresInputOrder(t *testing.T) {
	stmts := []model.Statement{
		stmt(xapi.VerbExperienced, "act/1", xapi.TypeModule, at(5, 9)),
		stmt(xapi.VerbExperienced, "act/2", xapi.TypeModule, at(9, 9)),
		stmt(xapi.VerbExperienced, "act/3", xapi.TypeModule, at(7, 9)),
	}
	got := testEngine().Progress(stmts)
	if got.LastActivity == nil || !got.LastActivity.Equal(at(9, 9)) {
		t.Fatalf("expected last activity %v, got %v", at(9, 9), got.LastActivity)
	}
}
