package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

// insights runs the rule set over an aggregated summary. Rules evaluate
// independently; the result is sorted by descending priority, stable in rule
// order for ties.
func (e *Engine) insights(s model.DashboardSummary) []model.Insight {
	var out []model.Insight

	if s.Progress.Percentage >= 80 {
		out = append(out, model.Insight{
			Type:     "success",
			Category: "progress",
			Title:    "Almost there",
			Message:  fmt.Sprintf("%d%% of activities completed, %d remaining.", s.Progress.Percentage, s.Progress.Remaining),
			Priority: model.PriorityMedium,
		})
	}
	if s.Progress.Percentage < 30 {
		out = append(out, model.Insight{
			Type:     "warning",
			Category: "progress",
			Title:    "Low completion",
			Message:  fmt.Sprintf("Only %d of %d activities completed so far.", s.Progress.Completed, s.Progress.Total),
			Priority: model.PriorityHigh,
		})
	}
	switch s.Scores.Trend {
	case model.TrendImproving:
		out = append(out, model.Insight{
			Type:     "success",
			Category: "scores",
			Title:    "Scores improving",
			Message:  fmt.Sprintf("Recent scores trend upward, average is %d%%.", s.Scores.Average),
			Priority: model.PriorityMedium,
		})
	case model.TrendDeclining:
		out = append(out, model.Insight{
			Type:     "warning",
			Category: "scores",
			Title:    "Scores declining",
			Message:  fmt.Sprintf("Recent scores trend downward, average is %d%%.", s.Scores.Average),
			Priority: model.PriorityHigh,
		})
	}
	if s.Engagement.CurrentStreak >= 7 {
		out = append(out, model.Insight{
			Type:     "success",
			Category: "engagement",
			Title:    "Strong streak",
			Message:  fmt.Sprintf("Active %d days in a row.", s.Engagement.CurrentStreak),
			Priority: model.PriorityMedium,
		})
	}
	if s.Engagement.CurrentStreak == 0 {
		out = append(out, model.Insight{
			Type:     "info",
			Category: "engagement",
			Title:    "No active streak",
			Message:  "No activity today or yesterday.",
			Priority: model.PriorityLow,
		})
	}
	if avg := rollingDailyActivity(s.Timeline); avg >= 5 {
		out = append(out, model.Insight{
			Type:     "success",
			Category: "engagement",
			Title:    "High activity",
			Message:  fmt.Sprintf("Averaging %.1f activities per day over the last week.", avg),
			Priority: model.PriorityMedium,
		})
	}
	if s.Engagement.VideoSeconds > 3600 {
		out = append(out, model.Insight{
			Type:     "info",
			Category: "engagement",
			Title:    "Video learner",
			Message:  fmt.Sprintf("%s of video watched.", xapi.FormatSeconds(s.Engagement.VideoSeconds)),
			Priority: model.PriorityLow,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	return out
}

// rollingDailyActivity averages activity counts over the 7 calendar days
// ending at the latest bucket. Inactive days count as zero.
func rollingDailyActivity(timeline []model.DayBucket) float64 {
	if len(timeline) == 0 {
		return 0
	}
	last, err := time.Parse(dayLayout, timeline[len(timeline)-1].Date)
	if err != nil {
		return 0
	}
	cutoff := last.AddDate(0, 0, -6)
	total := 0
	for _, day := range timeline {
		d, err := time.Parse(dayLayout, day.Date)
		if err != nil {
			continue
		}
		if !d.Before(cutoff) {
			total += day.TotalActivities
		}
	}
	return float64(total) / 7
}
