package analytics

import (
	"sort"

	"github.com/edmetric/lrslens/internal/model"
)

// charts projects an aggregated summary into rendering-ready label/value
// series.
func charts(s model.DashboardSummary) model.ChartData {
	var data model.ChartData

	for _, day := range s.Timeline {
		data.DailyActivity.Labels = append(data.DailyActivity.Labels, day.Date)
		data.DailyActivity.Values = append(data.DailyActivity.Values, float64(day.TotalActivities))
	}

	// Score trend runs chronologically even though the summary lists
	// canonical records newest-first.
	ordered := make([]model.ScoreRecord, len(s.Scores.Scores))
	copy(ordered, s.Scores.Scores)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	for _, r := range ordered {
		data.ScoreTrend.Labels = append(data.ScoreTrend.Labels, r.ActivityName)
		data.ScoreTrend.Values = append(data.ScoreTrend.Values, float64(r.Score))
	}

	for _, g := range []string{"A", "B", "C", "D", "F"} {
		data.GradeDistribution.Labels = append(data.GradeDistribution.Labels, g)
		data.GradeDistribution.Values = append(data.GradeDistribution.Values, float64(s.Scores.Distribution[g]))
	}
	return data
}
