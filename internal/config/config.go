// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Job       string `json:"job,omitempty"`        // Path to job description text file
	Library   string `json:"library,omitempty"`    // Path to the experience library root
	Template  string `json:"template,omitempty"`   // Path to LaTeX template
	OutputDir string `json:"output_dir,omitempty"` // Directory for generated artifacts

	// Classification
	DefaultCategory string `json:"default_category,omitempty"` // Category used when classification yields nothing usable

	// Synthesis limits
	SummarySentences int `json:"summary_sentences,omitempty"` // Number of sentences in the profile summary
	MinBullets       int `json:"min_bullets,omitempty"`       // Minimum experience bullets
	MaxBullets       int `json:"max_bullets,omitempty"`       // Maximum experience bullets

	// Behavior
	APIKey  string `json:"api_key,omitempty"` // Gemini API key
	Model   string `json:"model,omitempty"`   // Model name override for all tiers
	Verbose bool   `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.SummarySentences < 0 {
		return fmt.Errorf("config error: 'summary_sentences' must be non-negative")
	}
	if c.MinBullets < 0 {
		return fmt.Errorf("config error: 'min_bullets' must be non-negative")
	}
	if c.MaxBullets < 0 {
		return fmt.Errorf("config error: 'max_bullets' must be non-negative")
	}
	if c.MinBullets > 0 && c.MaxBullets > 0 && c.MinBullets > c.MaxBullets {
		return fmt.Errorf("config error: 'min_bullets' cannot exceed 'max_bullets'")
	}

	// Validate file paths exist (if specified)
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}
	if c.Library != "" {
		if _, err := os.Stat(c.Library); os.IsNotExist(err) {
			return fmt.Errorf("config error: library directory not found: %s", c.Library)
		}
	}
	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.Library == "" {
		result.Library = defaults.Library
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DefaultCategory == "" {
		result.DefaultCategory = defaults.DefaultCategory
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}

	// Int fields: use default if zero
	if result.SummarySentences == 0 {
		result.SummarySentences = defaults.SummarySentences
	}
	if result.MinBullets == 0 {
		result.MinBullets = defaults.MinBullets
	}
	if result.MaxBullets == 0 {
		result.MaxBullets = defaults.MaxBullets
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
