package xapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/edmetric/lrslens/internal/model"
)

// Options describes a statement to construct. Zero fields are omitted from
// the result rather than encoded as empty values.
type Options struct {
	ID          string
	ActorName   string
	ActorMbox   string
	VerbID      string
	VerbDisplay string
	ObjectID    string
	ObjectName  string
	ObjectType  string
	Scaled      *float64
	Raw         *float64
	Min         *float64
	Max         *float64
	Success     *bool
	Completion  *bool
	Duration    string
	Timestamp   time.Time
}

// New builds an immutable statement value from opts. A missing id gets a
// fresh UUID.
func New(opts Options) model.Statement {
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	st := model.Statement{
		ID: id,
		Actor: model.Actor{
			Name: opts.ActorName,
			Mbox: opts.ActorMbox,
		},
		Verb: model.Verb{
			ID: opts.VerbID,
		},
		Object: model.Object{
			ID: opts.ObjectID,
			Definition: model.Definition{
				Type: opts.ObjectType,
			},
		},
		Timestamp: model.Timestamp{Time: opts.Timestamp},
	}
	if opts.VerbDisplay != "" {
		st.Verb.Display = model.LanguageMap{"en": opts.VerbDisplay}
	}
	if opts.ObjectName != "" {
		st.Object.Definition.Name = model.LanguageMap{"en": opts.ObjectName}
	}

	if opts.Scaled != nil || opts.Raw != nil || opts.Success != nil || opts.Completion != nil || opts.Duration != "" {
		result := &model.Result{
			Success:    opts.Success,
			Completion: opts.Completion,
			Duration:   opts.Duration,
		}
		if opts.Scaled != nil || opts.Raw != nil {
			result.Score = &model.Score{
				Scaled: opts.Scaled,
				Raw:    opts.Raw,
				Min:    opts.Min,
				Max:    opts.Max,
			}
		}
		st.Result = result
	}
	return st
}
