// Package config loads the psyki configuration file
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/AbdouB/psyki/internal/trials"
)

// DefaultPath is the project-local configuration file
const DefaultPath = ".psyki/config.yaml"

// Config holds all psyki configuration.
type Config struct {
	Generator GeneratorConfig   `yaml:"generator"`
	TestPhase trials.TestConfig `yaml:"test_phase"`
	Extractor ExtractorConfig   `yaml:"extractor"`
	History   HistoryConfig     `yaml:"history"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// GeneratorConfig configures trial file generation.
type GeneratorConfig struct {
	OutputDir string `yaml:"output_dir"`
	Seed      uint64 `yaml:"seed"` // 0 seeds from the clock

	Main trials.MainConfig `yaml:"main"`
}

// ExtractorConfig configures d-prime extraction.
type ExtractorConfig struct {
	Index     int     `yaml:"index"`
	Field     string  `yaml:"field"`
	Reference float64 `yaml:"reference"` // literature value
	Chart     bool    `yaml:"chart"`
}

// HistoryConfig configures the run history database.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"` // empty = default location
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			OutputDir: "lib",
			Main:      trials.DefaultMainConfig(),
		},
		TestPhase: trials.DefaultTestConfig(),
		Extractor: ExtractorConfig{
			Index:     199,
			Field:     "dPrimeTeam",
			Reference: 3.8,
			Chart:     true,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PSYKI_OUTPUT_DIR"); v != "" {
		c.Generator.OutputDir = v
	}
	if v := os.Getenv("PSYKI_DB_PATH"); v != "" {
		c.History.DatabasePath = v
	}
	if v := os.Getenv("PSYKI_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}
