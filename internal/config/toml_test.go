package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[report]
actor = "mailto:alice@example.com"
last = 100
strict = true

[vocabulary]
completion-verbs = ["https://lms.example.com/verbs/finished"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Report.Actor == nil || *cfg.Report.Actor != "mailto:alice@example.com" {
		t.Fatalf("unexpected actor: %v", cfg.Report.Actor)
	}
	if cfg.Report.Last == nil || *cfg.Report.Last != 100 {
		t.Fatalf("unexpected last: %v", cfg.Report.Last)
	}
	if cfg.Report.Strict == nil || !*cfg.Report.Strict {
		t.Fatalf("unexpected strict: %v", cfg.Report.Strict)
	}
	if cfg.Report.Since != nil {
		t.Fatalf("expected nil since, got %v", cfg.Report.Since)
	}
	if len(cfg.Vocabulary.CompletionVerbs) != 1 {
		t.Fatalf("unexpected completion verbs: %v", cfg.Vocabulary.CompletionVerbs)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Report.Actor != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
