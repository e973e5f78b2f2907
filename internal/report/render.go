package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/edmetric/lrslens/internal/xapi"
)

const maxTimelineRows = 14

// Render writes the full text report.
func Render(w io.Writer, r Report) error {
	if r.Summary.Overview.TotalStatements == 0 {
		_, err := fmt.Fprintln(w, "No statements found.")
		return err
	}
	sections := []func(io.Writer, Report) error{
		renderOverview,
		renderProgress,
		renderScores,
		renderTimeline,
		renderEngagement,
		renderInsights,
		renderAnomalies,
	}
	for _, section := range sections {
		if err := section(w, r); err != nil {
			return err
		}
	}
	return nil
}

func renderOverview(w io.Writer, r Report) error {
	o := r.Summary.Overview
	if err := writeLines(w,
		"Overview",
		fmt.Sprintf("Statements: %d (%d skipped)", o.TotalStatements, o.SkippedStatements),
		fmt.Sprintf("Last updated: %s", o.LastUpdated.Format(time.RFC1123)),
		fmt.Sprintf("Data quality: %d%% (completeness %d%%, freshness %d%%)", o.DataQuality, o.Completeness, o.Freshness),
	); err != nil {
		return err
	}
	if o.HasMore {
		if err := writeLines(w, "Snapshot is partial; more statements exist at the source."); err != nil {
			return err
		}
	}
	return blankLine(w)
}

func renderProgress(w io.Writer, r Report) error {
	p := r.Summary.Progress
	lines := []string{
		"Progress",
		fmt.Sprintf("%d of %d activities completed (%d%%), %d remaining", p.Completed, p.Total, p.Percentage, p.Remaining),
	}
	if p.LastActivity != nil {
		lines = append(lines, fmt.Sprintf("Last activity: %s", p.LastActivity.Format(time.RFC1123)))
	}
	if len(p.ModuleCompletions) > 0 {
		lines = append(lines, "Recent module completions:")
		limit := len(p.ModuleCompletions)
		if limit > 5 {
			limit = 5
		}
		for _, mc := range p.ModuleCompletions[:limit] {
			lines = append(lines, fmt.Sprintf("  %s  %s", mc.CompletedAt.Format("2006-01-02"), mc.Name))
		}
	}
	if err := writeLines(w, lines...); err != nil {
		return err
	}
	return blankLine(w)
}

func renderScores(w io.Writer, r Report) error {
	s := r.Summary.Scores
	if len(s.Scores) == 0 {
		if err := writeLines(w, "Scores", "No scored activities."); err != nil {
			return err
		}
		return blankLine(w)
	}
	if err := writeLines(w,
		"Scores",
		fmt.Sprintf("Average %d%%, highest %d%%, lowest %d%%, pass rate %d%%, trend %s",
			s.Average, s.Highest, s.Lowest, s.PassRate, s.Trend),
	); err != nil {
		return err
	}

	headers := []string{"Activity", "Score", "Best", "Attempts", "Passed", "Last attempt"}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	rows := make([][]string, 0, len(s.Scores))
	for _, rec := range s.Scores {
		passed := "no"
		if rec.Success {
			passed = "yes"
		}
		rows = append(rows, []string{
			rec.ActivityName,
			strconv.Itoa(rec.Score) + "%",
			strconv.Itoa(rec.BestScore) + "%",
			strconv.Itoa(rec.Attempts),
			passed,
			rec.Timestamp.Format("2006-01-02"),
		})
	}
	if err := writeLines(w, formatTable(headers, rows, rightAlign)...); err != nil {
		return err
	}

	if err := writeLines(w, "Grade distribution:"); err != nil {
		return err
	}
	grades := r.Summary.Charts.GradeDistribution
	if err := writeLines(w, BarChart(grades.Labels, grades.Values, terminalWidth()-10)...); err != nil {
		return err
	}
	return blankLine(w)
}

func renderTimeline(w io.Writer, r Report) error {
	timeline := r.Summary.Timeline
	if len(timeline) == 0 {
		return nil
	}
	daily := r.Summary.Charts.DailyActivity
	if err := writeLines(w,
		"Timeline",
		fmt.Sprintf("Daily activity (%s .. %s): %s", timeline[0].Date, timeline[len(timeline)-1].Date, Sparkline(daily.Values)),
	); err != nil {
		return err
	}

	headers := []string{"Date", "Activities", "Completions", "Avg score", "Video time"}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	start := 0
	if len(timeline) > maxTimelineRows {
		start = len(timeline) - maxTimelineRows
	}
	rows := make([][]string, 0, len(timeline)-start)
	for _, day := range timeline[start:] {
		avg := "-"
		if day.AverageScore != nil {
			avg = strconv.Itoa(*day.AverageScore) + "%"
		}
		rows = append(rows, []string{
			day.Date,
			strconv.Itoa(day.TotalActivities),
			strconv.Itoa(day.Completions),
			avg,
			xapi.FormatSeconds(day.VideoSeconds),
		})
	}
	if err := writeLines(w, formatTable(headers, rows, rightAlign)...); err != nil {
		return err
	}
	return blankLine(w)
}

func renderEngagement(w io.Writer, r Report) error {
	e := r.Summary.Engagement
	lines := []string{
		"Engagement",
		fmt.Sprintf("Active days: %d, current streak: %d, longest streak: %d", e.ActiveDays, e.CurrentStreak, e.LongestStreak),
		fmt.Sprintf("Sessions: %d, average %s, longest %s",
			len(e.Sessions), xapi.FormatSeconds(e.AverageSessionSeconds), xapi.FormatSeconds(e.LongestSessionSeconds)),
	}
	if e.VideoInteractions > 0 {
		lines = append(lines, fmt.Sprintf("Video: %s over %d interactions", xapi.FormatSeconds(e.VideoSeconds), e.VideoInteractions))
	}
	if err := writeLines(w, lines...); err != nil {
		return err
	}
	return blankLine(w)
}

func renderInsights(w io.Writer, r Report) error {
	if len(r.Summary.Insights) == 0 {
		return nil
	}
	lines := []string{"Insights"}
	for _, in := range r.Summary.Insights {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", strings.ToUpper(string(in.Priority)), in.Title, in.Message))
	}
	if err := writeLines(w, lines...); err != nil {
		return err
	}
	return blankLine(w)
}

func renderAnomalies(w io.Writer, r Report) error {
	if len(r.Anomalies.Anomalies) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("Anomalies (risk: %s)", r.Anomalies.RiskLevel)}
	for _, a := range r.Anomalies.Anomalies {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", a.Severity, a.Kind, a.Message))
	}
	if err := writeLines(w, lines...); err != nil {
		return err
	}
	return blankLine(w)
}

func writeLines(w io.Writer, lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func blankLine(w io.Writer) error {
	_, err := fmt.Fprintln(w, "")
	return err
}
