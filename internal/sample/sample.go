// Package sample builds randomized statement streams for demos and tests.
package sample

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/edmetric/lrslens/internal/model"
	"github.com/edmetric/lrslens/internal/xapi"
)

// Generator produces plausible statement batches.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator with the given seed; a zero seed falls back to the
// current time.
func New(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

type activity struct {
	id       string
	name     string
	typeURI  string
	scorable bool
	video    bool
}

var catalog = []activity{
	{id: "https://lms.example.com/modules/orientation", name: "Orientation", typeURI: xapi.TypeModule},
	{id: "https://lms.example.com/modules/foundations", name: "Foundations", typeURI: xapi.TypeModule},
	{id: "https://lms.example.com/modules/applied-methods", name: "Applied Methods", typeURI: xapi.TypeModule},
	{id: "https://lms.example.com/modules/capstone", name: "Capstone", typeURI: xapi.TypeModule},
	{id: "https://lms.example.com/quizzes/foundations-check", name: "Foundations Check", typeURI: xapi.TypeAssessment, scorable: true},
	{id: "https://lms.example.com/quizzes/methods-check", name: "Methods Check", typeURI: xapi.TypeAssessment, scorable: true},
	{id: "https://lms.example.com/quizzes/final", name: "Final Quiz", typeURI: xapi.TypeAssessment, scorable: true},
	{id: "https://lms.example.com/assignments/case-study", name: "Case Study", typeURI: xapi.TypeAssignment, scorable: true},
	{id: "https://lms.example.com/videos/welcome", name: "Welcome Video", typeURI: xapi.TypeVideo, video: true},
	{id: "https://lms.example.com/videos/deep-dive", name: "Deep Dive", typeURI: xapi.TypeVideo, video: true},
}

var actors = []struct{ name, mbox string }{
	{"Sam Carter", "mailto:sam@example.com"},
	{"Lee Park", "mailto:lee@example.com"},
	{"Noa Adler", "mailto:noa@example.com"},
}

// Generate builds count statements spread over the days days ending at end.
// Later days lean toward higher scores so the stream shows a visible trend.
func (g *Generator) Generate(count, days int, end time.Time) []model.Statement {
	if count <= 0 {
		return nil
	}
	if days <= 0 {
		days = 1
	}
	end = end.UTC()
	stmts := make([]model.Statement, 0, count)
	for i := 0; i < count; i++ {
		// Cluster statements toward recent days.
		dayOffset := int(float64(days) * g.rnd.Float64() * g.rnd.Float64())
		ts := end.AddDate(0, 0, -dayOffset).
			Add(-time.Duration(g.rnd.Intn(10)) * time.Hour).
			Add(-time.Duration(g.rnd.Intn(60)) * time.Minute)
		progress := 1 - float64(dayOffset)/float64(days)
		stmts = append(stmts, g.statement(ts, progress))
	}
	return stmts
}

func (g *Generator) statement(ts time.Time, progress float64) model.Statement {
	act := catalog[g.rnd.Intn(len(catalog))]
	who := actors[g.rnd.Intn(len(actors))]
	opts := xapi.Options{
		ActorName:  who.name,
		ActorMbox:  who.mbox,
		ObjectID:   act.id,
		ObjectName: act.name,
		ObjectType: act.typeURI,
		Timestamp:  ts,
	}

	switch {
	case act.video:
		opts.VerbID = xapi.VerbPlayed
		opts.VerbDisplay = "played"
		opts.Duration = fmt.Sprintf("PT%dM%dS", 2+g.rnd.Intn(20), g.rnd.Intn(60))
	case act.scorable:
		scaled := g.score(progress)
		success := scaled >= 0.6
		completion := true
		opts.VerbID = xapi.VerbScored
		opts.VerbDisplay = "scored"
		opts.Scaled = &scaled
		opts.Success = &success
		opts.Completion = &completion
		if success {
			opts.VerbID = xapi.VerbPassed
			opts.VerbDisplay = "passed"
		}
	case g.rnd.Float64() < 0.6:
		opts.VerbID = xapi.VerbCompleted
		opts.VerbDisplay = "completed"
		completion := true
		opts.Completion = &completion
	default:
		opts.VerbID = xapi.VerbExperienced
		opts.VerbDisplay = "experienced"
	}
	return xapi.New(opts)
}

// score draws a scaled score that drifts upward as progress approaches 1.
func (g *Generator) score(progress float64) float64 {
	base := 0.5 + 0.35*progress
	jitter := (g.rnd.Float64() - 0.5) * 0.3
	scaled := base + jitter
	if scaled > 1 {
		scaled = 1
	}
	if scaled < 0.2 {
		scaled = 0.2
	}
	// Two-decimal scores read better in exports.
	return float64(int(scaled*100)) / 100
}
