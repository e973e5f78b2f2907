package export

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/edmetric/lrslens/internal/model"
)

func sampleSummary() model.DashboardSummary {
	avg := 85
	return model.DashboardSummary{
		Overview: model.Overview{
			LastUpdated:     time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
			TotalStatements: 3,
			DataQuality:     90,
			Completeness:    80,
			Freshness:       100,
		},
		Progress: model.ProgressSummary{Completed: 2, Total: 3, Percentage: 67, Remaining: 1},
		Scores: model.ScoreSummary{
			Scores: []model.ScoreRecord{{
				ActivityID:   "quiz/a",
				ActivityName: "Quiz A",
				Score:        85,
				BestScore:    85,
				Attempts:     1,
				Success:      true,
				Timestamp:    time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
				FirstAttempt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
			}},
			Average:       85,
			Highest:       85,
			Lowest:        85,
			TotalAttempts: 1,
			PassRate:      100,
			Trend:         model.TrendStable,
			Distribution:  map[string]int{"A": 0, "B": 1, "C": 0, "D": 0, "F": 0},
		},
		Timeline: []model.DayBucket{
			{Date: "2024-03-01", TotalActivities: 2, Completions: 2, VideoSeconds: 200},
			{Date: "2024-03-02", TotalActivities: 1, AverageScore: &avg, Scores: []int{85}},
		},
		Engagement: model.EngagementSummary{ActiveDays: 2, CurrentStreak: 2, LongestStreak: 2},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := sampleSummary()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, want); err != nil {
		t.Fatalf("failed to write json: %v", err)
	}
	first := buf.String()
	got, err := ReadJSON(strings.NewReader(first))
	if err != nil {
		t.Fatalf("failed to read json back: %v", err)
	}
	if got.Progress.Completed != want.Progress.Completed ||
		got.Progress.Total != want.Progress.Total ||
		got.Progress.Percentage != want.Progress.Percentage ||
		got.Progress.Remaining != want.Progress.Remaining {
		t.Fatalf("progress mismatch: got %+v, want %+v", got.Progress, want.Progress)
	}
	if got.Scores.Average != want.Scores.Average || got.Scores.PassRate != want.Scores.PassRate {
		t.Fatalf("score numerics mismatch: got %+v", got.Scores)
	}
	if !reflect.DeepEqual(got.Scores.Distribution, want.Scores.Distribution) {
		t.Fatalf("distribution mismatch: got %v", got.Scores.Distribution)
	}
	if got.Overview.DataQuality != want.Overview.DataQuality {
		t.Fatalf("quality mismatch: got %d", got.Overview.DataQuality)
	}

	// Re-encoding the parsed summary reproduces the original bytes.
	var second bytes.Buffer
	if err := WriteJSON(&second, got); err != nil {
		t.Fatalf("failed to re-encode: %v", err)
	}
	if second.String() != first {
		t.Fatal("re-encoded summary differs from original export")
	}
}

func TestTimelineCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTimelineCSV(&buf, sampleSummary().Timeline); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "date,total_activities,completions,average_score,video_time" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "2024-03-01,2,2,,3m 20s" {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if lines[2] != "2024-03-02,1,0,85,0s" {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	if err := WriteWorkbook(path, sampleSummary()); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
}
