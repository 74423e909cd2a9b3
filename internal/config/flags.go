package config

import (
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Flags are the command-line options of the batch command. Zero values leave
// the file (or default) configuration untouched.
type Flags struct {
	Config            string `long:"config" short:"c" env:"COCKTAIL_CONFIG" description:"Path to YAML configuration file"`
	RawOutput         string `long:"raw-output" env:"RAW_OUTPUT" description:"Raw batch JSON path"`
	TransformedOutput string `long:"transformed-output" env:"TRANSFORMED_OUTPUT" description:"Transformed batch JSON path"`
	Report            string `long:"report" env:"REPORT_OUTPUT" description:"Optional signed markdown report path"`
	LogLevel          string `long:"log-level" env:"LOG_LEVEL" description:"Log level (debug, info, warn, error)"`
	BatchSize         int    `long:"batch-size" short:"n" env:"BATCH_SIZE" default:"-1" description:"Number of drinks to fetch (default from config: 10)"`
	Backup            bool   `long:"backup" description:"Keep a .bak copy of existing output files"`
}

// ParseOptions parses args into a go-flags options struct. It reports true
// when help was requested and printed; the caller should then exit cleanly.
func ParseOptions(data any, args []string) (bool, error) {
	parser := flags.NewParser(data, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return true, nil
		}

		return false, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return false, nil
}

// ParseFlags parses args. It returns nil flags and no error when help was requested.
func ParseFlags(args []string) (*Flags, error) {
	var f Flags

	help, err := ParseOptions(&f, args)
	if err != nil || help {
		return nil, err
	}

	return &f, nil
}

// Apply overrides cfg with every flag that was set.
func (f *Flags) Apply(cfg *Config) {
	if f.BatchSize >= 0 {
		cfg.Batch.Size = f.BatchSize
	}

	if f.RawOutput != "" {
		cfg.Output.RawPath = f.RawOutput
	}

	if f.TransformedOutput != "" {
		cfg.Output.TransformedPath = f.TransformedOutput
	}

	if f.Report != "" {
		cfg.Output.ReportPath = f.Report
	}

	if f.LogLevel != "" {
		cfg.Logging.Level = f.LogLevel
	}

	if f.Backup {
		cfg.Output.CreateBackup = true
	}
}

// Resolve loads the configuration named by the flags (or the defaults),
// applies the flag overrides and validates the result.
func (f *Flags) Resolve() (*Config, error) {
	cfg := DefaultConfig()

	if f.Config != "" {
		loaded, err := LoadConfig(f.Config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	f.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}
