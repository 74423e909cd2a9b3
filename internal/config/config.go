// Package config provides configuration management for the cocktail batch tools.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"cocktailetl/pkg/utils"
)

// DefaultSourceURL returns one random drink per request.
const DefaultSourceURL = "https://www.thecocktaildb.com/api/json/v1/1/random.php"

// Configuration validation errors.
var (
	ErrMissingSourceURL       = errors.New("source.url is required")
	ErrInvalidSourceURL       = errors.New("source.url must be an absolute http(s) URL")
	ErrInvalidTimeout         = errors.New("source.timeout_sec must be at least 1")
	ErrInvalidBufferSize      = errors.New("source.buffer_size_kb must be at least 1")
	ErrInvalidRate            = errors.New("pacing.requests_per_second must be non-negative")
	ErrInvalidBurst           = errors.New("pacing.burst must be at least 1 when pacing is enabled")
	ErrInvalidBatchSize       = errors.New("batch.size must be non-negative")
	ErrMissingRawPath         = errors.New("output.raw_path is required")
	ErrMissingTransformedPath = errors.New("output.transformed_path is required")
	ErrSameOutputPath         = errors.New("output.raw_path and output.transformed_path must differ")
	ErrInvalidLogLevel        = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Config represents the complete batch configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Pacing  PacingConfig  `yaml:"pacing"`
	Batch   BatchConfig   `yaml:"batch"`
}

// SourceConfig describes the recipe API endpoint.
type SourceConfig struct {
	URL          string `yaml:"url"`
	UserAgent    string `yaml:"user_agent"`
	TimeoutSec   int    `yaml:"timeout_sec"`
	BufferSizeKb int    `yaml:"buffer_size_kb"`
}

// PacingConfig throttles requests to the public API. Zero disables pacing.
type PacingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// BatchConfig controls how many drinks one run fetches.
type BatchConfig struct {
	Size int `yaml:"size"`
}

// OutputConfig defines where the batch documents are written.
type OutputConfig struct {
	RawPath         string `yaml:"raw_path"`
	TransformedPath string `yaml:"transformed_path"`
	ReportPath      string `yaml:"report_path"`
	CreateBackup    bool   `yaml:"create_backup"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig reproduces a plain run: ten drinks, two JSON files in the working directory.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			URL:          DefaultSourceURL,
			UserAgent:    utils.DefaultUserAgent,
			TimeoutSec:   30,
			BufferSizeKb: 1024,
		},
		Pacing: PacingConfig{
			RequestsPerSecond: 0,
			Burst:             1,
		},
		Batch: BatchConfig{
			Size: 10,
		},
		Output: OutputConfig{
			RawPath:         "raw_cocktail_data.json",
			TransformedPath: "transformed_cocktail_data.json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Source.URL == "" {
		return ErrMissingSourceURL
	}

	if !utils.NewHTTPHelper().IsValidURL(c.Source.URL) {
		return fmt.Errorf("%w: %q", ErrInvalidSourceURL, c.Source.URL)
	}

	if c.Source.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Source.BufferSizeKb < 1 {
		return ErrInvalidBufferSize
	}

	if c.Pacing.RequestsPerSecond < 0 {
		return ErrInvalidRate
	}

	if c.Pacing.RequestsPerSecond > 0 && c.Pacing.Burst < 1 {
		return ErrInvalidBurst
	}

	if c.Batch.Size < 0 {
		return ErrInvalidBatchSize
	}

	if c.Output.RawPath == "" {
		return ErrMissingRawPath
	}

	if c.Output.TransformedPath == "" {
		return ErrMissingTransformedPath
	}

	if c.Output.RawPath == c.Output.TransformedPath {
		return ErrSameOutputPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// GetTimeout returns the HTTP request timeout.
func (s *SourceConfig) GetTimeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// Enabled reports whether request pacing is on.
func (p *PacingConfig) Enabled() bool {
	return p.RequestsPerSecond > 0
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Source: %s, BatchSize: %d, Raw: %s, Transformed: %s}",
		c.Source.URL,
		c.Batch.Size,
		c.Output.RawPath,
		c.Output.TransformedPath,
	)
}
