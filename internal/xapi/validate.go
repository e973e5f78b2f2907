package xapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/edmetric/lrslens/internal/model"
)

// Validation reports structural problems with a single statement. Errors
// block the statement from contributing to derived metrics; warnings do not.
type Validation struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks structural well-formedness of one statement. The input is
// never mutated.
func Validate(st model.Statement) Validation {
	var errs, warns []string

	if st.Actor.IsZero() {
		errs = append(errs, "actor is required")
	} else if st.Actor.Mbox == "" && st.Actor.Account == nil {
		errs = append(errs, "actor must carry a mbox or account identifier")
	}
	if st.Verb.ID == "" {
		errs = append(errs, "verb id is required")
	}
	if st.Object.ID == "" {
		errs = append(errs, "object id is required")
	}
	if st.Result != nil && st.Result.Score != nil {
		score := st.Result.Score
		if score.Scaled != nil && (*score.Scaled < -1 || *score.Scaled > 1) {
			errs = append(errs, fmt.Sprintf("scaled score %v outside [-1, 1]", *score.Scaled))
		}
		if score.Raw != nil && score.Max != nil && *score.Raw > *score.Max {
			errs = append(errs, fmt.Sprintf("raw score %v exceeds max %v", *score.Raw, *score.Max))
		}
	}
	if st.Timestamp.IsZero() {
		warns = append(warns, "timestamp is missing")
	}

	return Validation{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

// Sanitize returns a cleaned copy of the batch: timestamps normalized to
// UTC (unparsable ones were already dropped to zero by decoding) and
// localized text trimmed. Input statements are left untouched.
func Sanitize(stmts []model.Statement) []model.Statement {
	out := make([]model.Statement, len(stmts))
	for i, st := range stmts {
		st.Actor.Name = strings.TrimSpace(st.Actor.Name)
		st.Verb.Display = trimLanguageMap(st.Verb.Display)
		st.Object.Definition.Name = trimLanguageMap(st.Object.Definition.Name)
		st.Object.Definition.Description = trimLanguageMap(st.Object.Definition.Description)
		if !st.Timestamp.IsZero() {
			st.Timestamp = model.Timestamp{Time: st.Timestamp.UTC()}
		} else {
			st.Timestamp = model.Timestamp{Time: time.Time{}}
		}
		out[i] = st
	}
	return out
}

func trimLanguageMap(m model.LanguageMap) model.LanguageMap {
	if len(m) == 0 {
		return m
	}
	out := make(model.LanguageMap, len(m))
	for tag, text := range m {
		out[tag] = strings.TrimSpace(text)
	}
	return out
}
