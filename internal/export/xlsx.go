package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

// WriteWorkbook writes the summary as an Excel workbook with Overview,
// Timeline, and Scores sheets.
func WriteWorkbook(path string, summary model.DashboardSummary) error {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()

	if err := writeOverviewSheet(f, summary); err != nil {
		return err
	}
	if err := writeTimelineSheet(f, summary.Timeline); err != nil {
		return err
	}
	if err := writeScoresSheet(f, summary.Scores); err != nil {
		return err
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeOverviewSheet(f *excelize.File, summary model.DashboardSummary) error {
	const sheet = "Overview"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	rows := [][]any{
		{"Metric", "Value"},
		{"Last updated", summary.Overview.LastUpdated.Format(time.RFC3339)},
		{"Statements", summary.Overview.TotalStatements},
		{"Skipped statements", summary.Overview.SkippedStatements},
		{"Data quality", summary.Overview.DataQuality},
		{"Progress", fmt.Sprintf("%d%%", summary.Progress.Percentage)},
		{"Completed activities", summary.Progress.Completed},
		{"Average score", summary.Scores.Average},
		{"Score trend", string(summary.Scores.Trend)},
		{"Current streak", summary.Engagement.CurrentStreak},
		{"Longest streak", summary.Engagement.LongestStreak},
		{"Active days", summary.Engagement.ActiveDays},
		{"Video time", xapi.FormatSeconds(summary.Engagement.VideoSeconds)},
	}
	return writeRows(f, sheet, rows)
}

func writeTimelineSheet(f *excelize.File, timeline []model.DayBucket) error {
	const sheet = "Timeline"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	rows := [][]any{{"Date", "Activities", "Completions", "Average score", "Video time"}}
	for _, day := range timeline {
		avg := any("")
		if day.AverageScore != nil {
			avg = *day.AverageScore
		}
		rows = append(rows, []any{day.Date, day.TotalActivities, day.Completions, avg, xapi.FormatSeconds(day.VideoSeconds)})
	}
	return writeRows(f, sheet, rows)
}

func writeScoresSheet(f *excelize.File, scores model.ScoreSummary) error {
	const sheet = "Scores"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	rows := [][]any{{"Activity", "Score", "Best", "Attempts", "Passed", "Last attempt"}}
	for _, r := range scores.Scores {
		rows = append(rows, []any{r.ActivityName, r.Score, r.BestScore, r.Attempts, r.Success, r.Timestamp.Format(time.RFC3339)})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
