package dashui

import (
	"strings"
	"testing"
	"time"
)

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("hello", 10); got != "hello" {
		t.Fatalf("expected unchanged line, got %q", got)
	}
	if got := truncateLine("hello world", 8); got != "hello..." {
		t.Fatalf("expected ellipsis truncation, got %q", got)
	}
	if got := truncateLine("hello", 2); got != "he" {
		t.Fatalf("expected hard cut for tiny width, got %q", got)
	}
}

func TestPadLine(t *testing.T) {
	if got := padLine("ab", 4); got != "ab  " {
		t.Fatalf("expected padded line, got %q", got)
	}
	if got := padLine("abcd", 2); got != "abcd" {
		t.Fatalf("expected long line untouched, got %q", got)
	}
}

func TestFitLines(t *testing.T) {
	got := fitLines("a\nb\nc", 3, 2)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "a  " {
		t.Fatalf("expected padded first line, got %q", lines[0])
	}

	got = fitLines("a", 3, 3)
	lines = strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines after filling, got %d", len(lines))
	}
	if lines[2] != "   " {
		t.Fatalf("expected blank fill line, got %q", lines[2])
	}
}

func TestApplyFilterParsesInputs(t *testing.T) {
	m := &Model{}
	m.initInputs()
	m.filterInputs[0].SetValue("mailto:alice@example.com")
	m.filterInputs[1].SetValue("2024-03-01")
	m.filterInputs[2].SetValue("50")

	if err := m.applyFilter(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.cfg.Actor != "mailto:alice@example.com" {
		t.Fatalf("unexpected actor: %q", m.cfg.Actor)
	}
	if m.cfg.Since == nil || !m.cfg.Since.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("unexpected since: %v", m.cfg.Since)
	}
	if m.cfg.Last != 50 {
		t.Fatalf("unexpected last: %d", m.cfg.Last)
	}
}

func TestApplyFilterRejectsBadInputs(t *testing.T) {
	m := &Model{}
	m.initInputs()
	m.filterInputs[1].SetValue("March 1st")
	if err := m.applyFilter(); err == nil {
		t.Fatal("expected error for bad date")
	}

	m.filterInputs[1].SetValue("")
	m.filterInputs[2].SetValue("-3")
	if err := m.applyFilter(); err == nil {
		t.Fatal("expected error for negative last")
	}
}
