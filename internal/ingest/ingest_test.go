package ingest

import (
	"strings"
	"testing"
)

const sampleStatement = `{
	"id": "s1",
	"actor": {"name": "Sam", "mbox": "mailto:sam@example.com"},
	"verb": {"id": "http://adlnet.gov/expapi/verbs/completed", "display": {"en": "completed"}},
	"object": {"id": "course/1", "definition": {"name": {"en": "Course 1"}}},
	"timestamp": "2024-03-01T09:00:00Z"
}`

func TestReadArray(t *testing.T) {
	got, err := Read(strings.NewReader("[" + sampleStatement + "]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Statements) != 1 || got.Statements[0].ID != "s1" {
		t.Fatalf("expected one statement s1, got %+v", got.Statements)
	}
	if got.HasMore {
		t.Fatal("expected HasMore false for bare array")
	}
}

func TestReadEnvelope(t *testing.T) {
	in := `{"statements": [` + sampleStatement + `], "more": "/batch/2"}`
	got, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Statements) != 1 {
		t.Fatalf("expected one statement, got %d", len(got.Statements))
	}
	if !got.HasMore {
		t.Fatal("expected HasMore true when more is set")
	}
}

func TestReadLines(t *testing.T) {
	line := strings.ReplaceAll(sampleStatement, "\n", " ")
	in := line + "\n" + strings.ReplaceAll(line, `"s1"`, `"s2"`) + "\n"
	got, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Statements) != 2 || got.Statements[1].ID != "s2" {
		t.Fatalf("expected two statements, got %+v", got.Statements)
	}
}

func TestReadAssignsMissingIDs(t *testing.T) {
	in := strings.ReplaceAll("["+sampleStatement+"]", `"id": "s1",`, "")
	got, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Statements[0].ID == "" {
		t.Fatal("expected generated id for statement without one")
	}
}

func TestReadEmptyInput(t *testing.T) {
	got, err := Read(strings.NewReader("  \n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Statements) != 0 {
		t.Fatalf("expected no statements, got %d", len(got.Statements))
	}
}

func TestReadBadTimestampKeepsStatement(t *testing.T) {
	in := strings.ReplaceAll("["+sampleStatement+"]", "2024-03-01T09:00:00Z", "not a time")
	got, err := Read(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Statements) != 1 {
		t.Fatalf("expected statement to survive, got %d", len(got.Statements))
	}
	if !got.Statements[0].Timestamp.IsZero() {
		t.Fatalf("expected zero timestamp, got %v", got.Statements[0].Timestamp)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	if _, err := Read(strings.NewReader("not json")); err == nil {
		t.Fatal("expected error for unrecognized input")
	}
}
