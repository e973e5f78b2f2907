package analytics

import (
	"fmt"

	"github.com/edmetric/lrslens/internal/model"
)

// Anomalies scans an aggregated summary for statistically suspicious
// patterns, independently of insight generation.
func (e *Engine) Anomalies(s model.DashboardSummary) model.AnomalyReport {
	var found []model.Anomaly

	if s.Scores.TotalAttempts >= 5 && s.Scores.PerfectAttempts == s.Scores.TotalAttempts {
		found = append(found, model.Anomaly{
			Kind:     "suspicious_scores",
			Severity: model.SeverityMedium,
			Message:  fmt.Sprintf("All %d scored attempts are perfect.", s.Scores.TotalAttempts),
		})
	}
	if len(s.Scores.Scores) > 0 && s.Scores.Highest-s.Scores.Lowest > 50 {
		found = append(found, model.Anomaly{
			Kind:     "large_improvement",
			Severity: model.SeverityLow,
			Message:  fmt.Sprintf("Score spread of %d points between lowest and highest.", s.Scores.Highest-s.Scores.Lowest),
		})
	}
	if spike, count := activitySpike(s.Timeline); spike != "" {
		found = append(found, model.Anomaly{
			Kind:     "activity_spike",
			Severity: model.SeverityLow,
			Message:  fmt.Sprintf("%d activities on %s, far above the daily mean.", count, spike),
		})
	}

	return model.AnomalyReport{Anomalies: found, RiskLevel: riskLevel(found)}
}

// activitySpike returns the first day whose activity count exceeds five
// times the mean daily count.
func activitySpike(timeline []model.DayBucket) (string, int) {
	if len(timeline) == 0 {
		return "", 0
	}
	total := 0
	for _, day := range timeline {
		total += day.TotalActivities
	}
	mean := float64(total) / float64(len(timeline))
	for _, day := range timeline {
		if float64(day.TotalActivities) > 5*mean {
			return day.Date, day.TotalActivities
		}
	}
	return "", 0
}

func riskLevel(found []model.Anomaly) model.RiskLevel {
	high, medium, low := 0, 0, 0
	for _, a := range found {
		switch a.Severity {
		case model.SeverityHigh:
			high++
		case model.SeverityMedium:
			medium++
		case model.SeverityLow:
			low++
		}
	}
	switch {
	case high > 0 || medium >= 2:
		return model.RiskHigh
	case medium == 1:
		return model.RiskMedium
	case low > 0:
		return model.RiskLow
	default:
		return model.RiskNone
	}
}
