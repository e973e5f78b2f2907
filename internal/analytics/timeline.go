package analytics

import (
	"sort"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

const dayLayout = "2006-01-02"

// Timeline buckets statements by UTC calendar day, ascending. Days with no
// statements get no bucket, and statements without a timestamp are skipped.
func (e *Engine) Timeline(stmts []model.Statement) []model.DayBucket {
	ordered := make([]model.Statement, 0, len(stmts))
	for _, st := range stmts {
		if st.Timestamp.IsZero() {
			continue
		}
		ordered = append(ordered, st)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp.Time)
	})

	var days []model.DayBucket
	index := make(map[string]int)
	for _, st := range ordered {
		key := st.Timestamp.UTC().Format(dayLayout)
		i, ok := index[key]
		if !ok {
			i = len(days)
			index[key] = i
			days = append(days, model.DayBucket{Date: key, TypeCounts: make(map[string]int)})
		}
		day := &days[i]

		typeLabel := e.Vocab.TypeLabel(st.Object.Definition.Type)
		view := model.ActivityView{
			ID:        st.Object.ID,
			Name:      st.ActivityName(),
			Verb:      e.Vocab.VerbLabel(st.Verb),
			Type:      typeLabel,
			Timestamp: st.Timestamp.Time,
		}
		if st.Result != nil {
			view.Success = st.Result.Success
		}
		if st.HasScore() {
			pct := roundPct(*st.Result.Score.Scaled * 100)
			view.Score = &pct
			day.Scores = append(day.Scores, pct)
		}
		day.Activities = append(day.Activities, view)
		day.TotalActivities++
		day.TypeCounts[typeLabel]++
		if e.Vocab.IsCompletion(st.Verb.ID) {
			day.Completions++
		}
		if e.Vocab.IsVideo(st.Object.Definition.Type) && st.Result != nil && st.Result.Duration != "" {
			day.VideoSeconds += xapi.ParseDuration(st.Result.Duration)
		}
	}

	for i := range days {
		if len(days[i].Scores) == 0 {
			continue
		}
		sum := 0
		for _, s := range days[i].Scores {
			sum += s
		}
		avg := roundPct(float64(sum) / float64(len(days[i].Scores)))
		days[i].AverageScore = &avg
	}
	return days
}
