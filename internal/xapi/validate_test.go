package xapi

import (
	"testing"
	"time"

	"github.com/edmetric/lrslens/internal/model"
)

func f(v float64) *float64 { return &v }

func TestValidateWellFormed(t *testing.T) {
	st := New(Options{
		ActorName: "Sam",
		ActorMbox: "mailto:sam@example.com",
		VerbID:    VerbCompleted,
		ObjectID:  "course/1",
		Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	got := Validate(st)
	if !got.Valid || len(got.Errors) != 0 || len(got.Warnings) != 0 {
		t.Fatalf("expected valid, got %+v", got)
	}
}

func TestValidateMissingFields(t *testing.T) {
	got := Validate(model.Statement{})
	if got.Valid {
		t.Fatal("expected invalid")
	}
	if len(got.Errors) != 3 {
		t.Fatalf("expected 3 errors (actor, verb, object), got %v", got.Errors)
	}
}

func TestValidateActorNeedsIdentifier(t *testing.T) {
	st := model.Statement{
		Actor:  model.Actor{Name: "Sam"},
		Verb:   model.Verb{ID: VerbCompleted},
		Object: model.Object{ID: "course/1"},
	}
	got := Validate(st)
	if got.Valid {
		t.Fatal("expected invalid for actor without mbox or account")
	}
}

func TestValidateScoreRanges(t *testing.T) {
	st := New(Options{
		ActorMbox: "mailto:sam@example.com",
		VerbID:    VerbScored,
		ObjectID:  "quiz/1",
		Scaled:    f(1.5),
		Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if got := Validate(st); got.Valid {
		t.Fatal("expected invalid for scaled > 1")
	}

	st = New(Options{
		ActorMbox: "mailto:sam@example.com",
		VerbID:    VerbScored,
		ObjectID:  "quiz/1",
		Raw:       f(120),
		Max:       f(100),
		Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	})
	if got := Validate(st); got.Valid {
		t.Fatal("expected invalid for raw > max")
	}
}

func TestValidateMissingTimestampWarns(t *testing.T) {
	st := New(Options{
		ActorMbox: "mailto:sam@example.com",
		VerbID:    VerbCompleted,
		ObjectID:  "course/1",
	})
	got := Validate(st)
	if !got.Valid {
		t.Fatalf("expected valid, got errors %v", got.Errors)
	}
	if len(got.Warnings) != 1 {
		t.Fatalf("expected timestamp warning, got %v", got.Warnings)
	}
}

func TestSanitizeTrimsAndNormalizes(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*3600)
	in := []model.Statement{{
		Actor:     model.Actor{Name: "  Sam  ", Mbox: "mailto:sam@example.com"},
		Verb:      model.Verb{ID: VerbCompleted, Display: model.LanguageMap{"en": " completed "}},
		Object:    model.Object{ID: "course/1"},
		Timestamp: model.Timestamp{Time: time.Date(2024, 3, 1, 12, 0, 0, 0, loc)},
	}}
	out := Sanitize(in)
	if out[0].Actor.Name != "Sam" {
		t.Fatalf("expected trimmed name, got %q", out[0].Actor.Name)
	}
	if out[0].Verb.Display["en"] != "completed" {
		t.Fatalf("expected trimmed display, got %q", out[0].Verb.Display["en"])
	}
	if out[0].Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", out[0].Timestamp.Location())
	}
	if in[0].Actor.Name != "  Sam  " {
		t.Fatal("input must not be mutated")
	}
}

func TestVocabularyOverride(t *testing.T) {
	base := DefaultVocabulary()
	custom := base.Apply(Override{CompletionVerbs: []string{"https://lms.example.com/verbs/finished"}})
	if !custom.IsCompletion("https://lms.example.com/verbs/finished") {
		t.Fatal("expected override verb to count as completion")
	}
	if base.IsCompletion("https://lms.example.com/verbs/finished") {
		t.Fatal("expected base vocabulary to stay unchanged")
	}
	if !custom.IsCompletion(VerbCompleted) {
		t.Fatal("expected default verb to survive override")
	}
}

func TestLabels(t *testing.T) {
	v := DefaultVocabulary()
	if got := v.TypeLabel(TypeAssessment); got != "quiz" {
		t.Fatalf("expected quiz, got %q", got)
	}
	if got := v.TypeLabel(""); got != "activity" {
		t.Fatalf("expected activity, got %q", got)
	}
	if got := v.TypeLabel("https://example.com/types/field-trip"); got != "field trip" {
		t.Fatalf("expected field trip, got %q", got)
	}
	verb := model.Verb{ID: VerbCompleted}
	if got := v.VerbLabel(verb); got != "completed" {
		t.Fatalf("expected completed, got %q", got)
	}
	verb.Display = model.LanguageMap{"en": "wrapped up"}
	if got := v.VerbLabel(verb); got != "wrapped up" {
		t.Fatalf("expected display text to win, got %q", got)
	}
}
