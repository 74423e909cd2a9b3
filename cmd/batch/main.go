// Package main provides the batch command: fetch random drinks, normalise them and save both documents.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cocktailetl/internal/batch"
	"cocktailetl/internal/config"
	"cocktailetl/internal/crawler"
	"cocktailetl/internal/logger"
)

func main() {
	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if opts == nil {
		return
	}

	cfg, err := opts.Resolve()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg := logger.NewLogger(cfg.Logging.Level)
	logg.Debug("Loaded configuration", "config", cfg.String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scraper := crawler.NewScraperWithConfig(&cfg.Source, &cfg.Pacing, logg)
	client := crawler.NewClientWithDeps(scraper, cfg.Output.CreateBackup)

	runner := batch.NewRunner(client, client, batch.Options{
		RawPath:         cfg.Output.RawPath,
		TransformedPath: cfg.Output.TransformedPath,
		ReportPath:      cfg.Output.ReportPath,
	}, logg)

	logg.Info(fmt.Sprintf("🍸 Fetching %d drinks from %s", cfg.Batch.Size, cfg.Source.URL))

	result, err := runner.Run(ctx, cfg.Batch.Size)
	if err != nil {
		logg.Error(fmt.Sprintf("❌ Batch failed: %v", err), "raw", cfg.Output.RawPath, "transformed", cfg.Output.TransformedPath)
		stop()
		os.Exit(1)
	}

	logg.Info(fmt.Sprintf("✅ %d/%d drinks saved in %v", result.Succeeded, result.Attempted, result.Duration),
		"run_id", result.RunID,
		"raw", cfg.Output.RawPath,
		"transformed", cfg.Output.TransformedPath)

	if result.Failed > 0 {
		logg.Warn(fmt.Sprintf("⚠️  %d drinks skipped", result.Failed))
	}

	if result.Interrupted {
		logg.Warn("⚠️  Batch interrupted before completion")
	}
}
