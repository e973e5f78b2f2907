package analytics

import (
	"sort"
	"time"

	"github.com/edmetric/lrslens/internal/model"
)

// Progress derives completion progress over the statement set. Membership is
// per activity id, so repeated events on the same activity count once.
func (e *Engine) Progress(stmts []model.Statement) model.ProgressSummary {
	seen := make(map[string]struct{})
	completed := make(map[string]struct{})
	var modules []model.ModuleCompletion
	var last time.Time

	for _, st := range stmts {
		if st.Object.ID != "" {
			seen[st.Object.ID] = struct{}{}
		}
		if !st.Timestamp.IsZero() && st.Timestamp.After(last) {
			last = st.Timestamp.Time
		}
		if !e.Vocab.IsCompletion(st.Verb.ID) {
			continue
		}
		completed[st.Object.ID] = struct{}{}
		if e.Vocab.IsModule(st.Object.Definition.Type) {
			modules = append(modules, model.ModuleCompletion{
				ID:          st.Object.ID,
				Name:        st.ActivityName(),
				CompletedAt: st.Timestamp.Time,
				Actor:       st.Actor.Name,
			})
		}
	}

	sort.SliceStable(modules, func(i, j int) bool {
		return modules[i].CompletedAt.After(modules[j].CompletedAt)
	})

	total := len(seen)
	done := len(completed)
	pct := 0
	if total > 0 {
		pct = roundPct(float64(done) / float64(total) * 100)
	}

	summary := model.ProgressSummary{
		Completed:         done,
		Total:             total,
		Percentage:        pct,
		Remaining:         total - done,
		ModuleCompletions: modules,
	}
	if !last.IsZero() {
		summary.LastActivity = &last
	}
	return summary
}
