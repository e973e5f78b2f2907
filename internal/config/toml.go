// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Report     ReportConfig     `toml:"report"`
	Vocabulary VocabularyConfig `toml:"vocabulary"`
}

// ReportConfig maps report-related settings.
type ReportConfig struct {
	Actor  *string `toml:"actor"`
	Last   *int    `toml:"last"`
	Since  *string `toml:"since"`
	Strict *bool   `toml:"strict"`
}

// VocabularyConfig lists provider-specific verb and activity-type URIs that
// extend the built-in vocabulary.
type VocabularyConfig struct {
	CompletionVerbs []string `toml:"completion-verbs"`
	ModuleTypes     []string `toml:"module-types"`
	QuizTypes       []string `toml:"quiz-types"`
	AssignmentTypes []string `toml:"assignment-types"`
	VideoTypes      []string `toml:"video-types"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
