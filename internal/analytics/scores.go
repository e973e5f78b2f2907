package analytics

import (
	"sort"

	"github.com/edmetric/lrslens/internal/model"
)

const trendThreshold = 5.0

type attempt struct {
	st  model.Statement
	pct int
}

// Scores aggregates score-bearing statements per activity. The latest
// attempt per activity becomes the canonical record, annotated with the
// attempt count and best score of its group; average, highest, lowest, and
// pass rate are computed over the canonical set, while the grade
// distribution counts every raw attempt.
func (e *Engine) Scores(stmts []model.Statement) model.ScoreSummary {
	groups := make(map[string][]attempt)
	order := []string{}
	totalAttempts := 0
	perfect := 0
	dist := map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "F": 0}

	for _, st := range stmts {
		if !st.HasScore() {
			continue
		}
		pct := roundPct(*st.Result.Score.Scaled * 100)
		if _, ok := groups[st.Object.ID]; !ok {
			order = append(order, st.Object.ID)
		}
		groups[st.Object.ID] = append(groups[st.Object.ID], attempt{st: st, pct: pct})
		dist[grade(pct)]++
		totalAttempts++
		if pct == 100 {
			perfect++
		}
	}

	records := make([]model.ScoreRecord, 0, len(groups))
	for _, id := range order {
		records = append(records, canonical(groups[id]))
	}

	summary := model.ScoreSummary{
		TotalAttempts:   totalAttempts,
		PerfectAttempts: perfect,
		Trend:           model.TrendStable,
		Distribution:    dist,
	}
	if len(records) == 0 {
		return summary
	}

	sum := 0
	highest := records[0].Score
	lowest := records[0].Score
	passed := 0
	for _, r := range records {
		sum += r.Score
		if r.Score > highest {
			highest = r.Score
		}
		if r.Score < lowest {
			lowest = r.Score
		}
		if r.Success {
			passed++
		}
	}
	summary.Average = roundPct(float64(sum) / float64(len(records)))
	summary.Highest = highest
	summary.Lowest = lowest
	summary.PassRate = roundPct(float64(passed) / float64(len(records)) * 100)
	summary.Trend = trend(records)

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	summary.Scores = records
	return summary
}

// canonical resolves a group of attempts on one activity to its latest
// attempt, annotated with group-level stats.
func canonical(group []attempt) model.ScoreRecord {
	latest := group[0]
	first := group[0].st.Timestamp.Time
	best := group[0].pct
	for _, a := range group[1:] {
		if a.st.Timestamp.After(latest.st.Timestamp.Time) {
			latest = a
		}
		if a.st.Timestamp.Before(first) {
			first = a.st.Timestamp.Time
		}
		if a.pct > best {
			best = a.pct
		}
	}
	success := false
	if latest.st.Result.Success != nil {
		success = *latest.st.Result.Success
	}
	return model.ScoreRecord{
		ActivityID:   latest.st.Object.ID,
		ActivityName: latest.st.ActivityName(),
		Score:        latest.pct,
		BestScore:    best,
		Attempts:     len(group),
		Success:      success,
		Timestamp:    latest.st.Timestamp.Time,
		FirstAttempt: first,
	}
}

// trend compares the mean scores of the earlier and later halves of the
// canonical records, ordered by timestamp. Fewer than two records is stable.
func trend(records []model.ScoreRecord) model.Trend {
	if len(records) < 2 {
		return model.TrendStable
	}
	ordered := make([]model.ScoreRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})
	mid := len(ordered) / 2
	earlier := mean(ordered[:mid])
	later := mean(ordered[mid:])
	switch {
	case later-earlier > trendThreshold:
		return model.TrendImproving
	case earlier-later > trendThreshold:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

func mean(records []model.ScoreRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += r.Score
	}
	return float64(sum) / float64(len(records))
}

func grade(pct int) string {
	switch {
	case pct >= 90:
		return "A"
	case pct >= 80:
		return "B"
	case pct >= 70:
		return "C"
	case pct >= 60:
		return "D"
	default:
		return "F"
	}
}
