package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bankscope-dev/bankscope/internal/classify"
	"github.com/bankscope-dev/bankscope/internal/statement"
)

// Config represents the top-level bankscope.yaml configuration.
type Config struct {
	Columns ColumnsConfig `yaml:"columns"`
	Rules   RulesConfig   `yaml:"rules"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// ColumnsConfig overrides the header synonym sets per column.
type ColumnsConfig struct {
	Concept []string `yaml:"concept,omitempty"`
	Date    []string `yaml:"date,omitempty"`
	Amount  []string `yaml:"amount,omitempty"`
}

// RulesConfig points at a categorization rules file.
type RulesConfig struct {
	File string `yaml:"file,omitempty"`
}

// OutputConfig controls where exports and the run log land.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig controls CLI diagnostics.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads a bankscope.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Output: OutputConfig{Dir: "reports"},
		Log:    LogConfig{Level: "info"},
	}
}

// Statement builds the parser column synonyms, falling back to the built-in
// sets for any column the config leaves empty.
func (c *Config) Statement() statement.Columns {
	cols := statement.DefaultColumns()
	if len(c.Columns.Concept) > 0 {
		cols.Concept = c.Columns.Concept
	}
	if len(c.Columns.Date) > 0 {
		cols.Date = c.Columns.Date
	}
	if len(c.Columns.Amount) > 0 {
		cols.Amount = c.Columns.Amount
	}
	return cols
}

// Classifier builds the classifier from the configured rules file, or from
// the default rule table when none is set.
func (c *Config) Classifier() (*classify.Classifier, error) {
	rules := classify.DefaultRules()
	if c.Rules.File != "" {
		loaded, err := classify.LoadRules(c.Rules.File)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}
	return classify.New(rules)
}
