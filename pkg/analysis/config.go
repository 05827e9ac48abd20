package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/example/surveylab/pkg/survey"
)

// Config holds everything one analysis run needs.
type Config struct {
	Input       string        `yaml:"input"`         // Survey CSV path
	OutputDir   string        `yaml:"output_dir"`    // Directory for charts and reports
	Alpha       float64       `yaml:"alpha"`         // Significance level
	MinPerStore int           `yaml:"min_per_store"` // Minimum responses per store
	Charts      bool          `yaml:"charts"`        // Render PNG charts
	Excel       bool          `yaml:"excel"`         // Write the Excel workbook
	Schema      survey.Schema `yaml:"schema"`        // CSV column mapping
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Input:       "survey.csv",
		OutputDir:   "out",
		Alpha:       0.05,
		MinPerStore: 3,
		Charts:      true,
		Excel:       true,
		Schema:      survey.DefaultSchema(),
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the battery cannot run with.
func (c Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input path is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf("alpha must be in (0, 1), got %v", c.Alpha)
	}
	if c.MinPerStore < 2 {
		return fmt.Errorf("min_per_store must be at least 2, got %d", c.MinPerStore)
	}
	return nil
}
