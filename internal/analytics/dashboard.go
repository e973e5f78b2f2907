package analytics

import (
	"time"

	"github.com/edmetric/lrslens/internal/model"
)

// Dashboard merges the bundle's collections into one pool and aggregates it.
func (e *Engine) Dashboard(bundle model.StatementBundle, now time.Time) (model.DashboardSummary, error) {
	return e.DashboardFromPool(bundle.Pool(), bundle.HasMore, now)
}

// DashboardFromPool runs the full aggregation pass over a flat statement
// pool: validation, progress, scores, timeline, engagement, quality, then
// insights and chart projections. Scores consider only quiz and assignment
// activities. In strict mode an invalid statement aborts with an error.
func (e *Engine) DashboardFromPool(pool []model.Statement, hasMore bool, now time.Time) (model.DashboardSummary, error) {
	kept, skipped, err := e.filter(pool)
	if err != nil {
		return model.DashboardSummary{}, err
	}

	scorable := make([]model.Statement, 0, len(kept))
	for _, st := range kept {
		if e.Vocab.IsScorable(st.Object.Definition.Type) {
			scorable = append(scorable, st)
		}
	}

	summary := model.DashboardSummary{
		Progress:   e.Progress(kept),
		Scores:     e.Scores(scorable),
		Timeline:   e.Timeline(kept),
		Engagement: e.Engagement(kept, now),
	}

	completeness, freshness := quality(kept, summary.Progress.LastActivity, now)
	summary.Overview = model.Overview{
		LastUpdated:       now,
		TotalStatements:   len(kept),
		SkippedStatements: skipped,
		HasMore:           hasMore,
		Completeness:      completeness,
		Freshness:         freshness,
		DataQuality:       roundPct(float64(completeness+freshness) / 2),
	}

	summary.Insights = e.insights(summary)
	summary.Charts = charts(summary)
	return summary, nil
}

// quality scores the snapshot: completeness is the share of statements
// carrying a result, freshness loses 10 points per day beyond a week since
// the latest activity and never drops below 0. An empty snapshot scores 0.
func quality(stmts []model.Statement, last *time.Time, now time.Time) (completeness, freshness int) {
	if len(stmts) == 0 {
		return 0, 0
	}
	withResult := 0
	for _, st := range stmts {
		if st.Result != nil {
			withResult++
		}
	}
	completeness = roundPct(float64(withResult) / float64(len(stmts)) * 100)

	if last == nil {
		return completeness, 0
	}
	days := int(now.Sub(*last).Hours() / 24)
	freshness = 100
	if days > 7 {
		freshness = 100 - 10*(days-7)
		if freshness < 0 {
			freshness = 0
		}
	}
	return completeness, freshness
}
