// Package analytics derives dashboard metrics from xAPI statement snapshots.
// Every computation is a pure function of its input statements plus an
// explicit "now"; nothing here reads the ambient clock or holds state across
// calls.
package analytics

import (
	"fmt"
	"math"
	"strings"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

// Engine evaluates statement snapshots against one provider vocabulary.
// In strict mode any invalid statement aborts the pass; in the default
// lenient mode invalid statements are skipped and counted.
type Engine struct {
	Vocab  xapi.Vocabulary
	Strict bool
}

// New returns an engine using the given vocabulary in lenient mode.
func New(vocab xapi.Vocabulary) *Engine {
	return &Engine{Vocab: vocab}
}

// filter validates a pool of statements. It returns the valid subset and the
// skip count, or an error in strict mode when any statement fails validation.
func (e *Engine) filter(stmts []model.Statement) ([]model.Statement, int, error) {
	kept := make([]model.Statement, 0, len(stmts))
	skipped := 0
	for _, st := range stmts {
		v := xapi.Validate(st)
		if v.Valid {
			kept = append(kept, st)
			continue
		}
		if e.Strict {
			return nil, 0, fmt.Errorf("invalid statement %q: %s", st.ID, strings.Join(v.Errors, "; "))
		}
		skipped++
	}
	return kept, skipped, nil
}

func roundPct(x float64) int {
	return int(math.Round(x))
}
