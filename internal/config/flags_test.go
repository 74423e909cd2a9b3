package config

import (
	"errors"
	"testing"
)

func TestParseFlags_Defaults(t *testing.T) {
	f, err := ParseFlags([]string{})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	cfg, err := f.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.Batch.Size != 10 {
		t.Errorf("Expected batch size 10 without flags, got %d", cfg.Batch.Size)
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	configPath := createTempConfigFile(t, validConfigYAML)

	f, err := ParseFlags([]string{
		"--config", configPath,
		"-n", "0",
		"--raw-output", "raw.json",
		"--transformed-output", "transformed.json",
		"--log-level", "warn",
		"--backup",
	})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	cfg, err := f.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.Batch.Size != 0 {
		t.Errorf("Expected batch size 0, got %d", cfg.Batch.Size)
	}

	if cfg.Output.RawPath != "raw.json" || cfg.Output.TransformedPath != "transformed.json" {
		t.Errorf("Output paths not overridden: %+v", cfg.Output)
	}

	// Report path comes from the file since no flag was given.
	if cfg.Output.ReportPath != "out/report.md" {
		t.Errorf("Expected report path from file, got %q", cfg.Output.ReportPath)
	}

	if cfg.Logging.Level != "warn" {
		t.Errorf("Expected log level warn, got %q", cfg.Logging.Level)
	}

	if cfg.Source.URL != "http://localhost:9000/random.php" {
		t.Errorf("Expected source URL from file, got %q", cfg.Source.URL)
	}
}

func TestParseFlags_InvalidOverride(t *testing.T) {
	f, err := ParseFlags([]string{"--log-level", "loud"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if _, err := f.Resolve(); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Expected ErrInvalidLogLevel, got %v", err)
	}
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	if _, err := ParseFlags([]string{"--no-such-flag"}); err == nil {
		t.Error("Expected error for unknown flag")
	}
}

func TestParseFlags_Help(t *testing.T) {
	f, err := ParseFlags([]string{"--help"})
	if err != nil {
		t.Fatalf("Expected no error for --help, got %v", err)
	}

	if f != nil {
		t.Errorf("Expected nil flags for --help, got %+v", f)
	}
}

func TestParseOptions(t *testing.T) {
	var opts struct {
		Input string `long:"input" default:"in.json"`
	}

	help, err := ParseOptions(&opts, []string{"--input", "raw.json"})
	if err != nil || help {
		t.Fatalf("ParseOptions() = %v, %v", help, err)
	}

	if opts.Input != "raw.json" {
		t.Errorf("Expected input raw.json, got %q", opts.Input)
	}

	help, err = ParseOptions(&opts, []string{"-h"})
	if err != nil || !help {
		t.Errorf("Expected help without error, got %v, %v", help, err)
	}
}
