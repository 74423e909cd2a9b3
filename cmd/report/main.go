// Package main provides the report command for rendering and verifying signed batch reports.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"cocktailetl/internal/config"
	"cocktailetl/internal/crawler"
	"cocktailetl/internal/formatter"
	"cocktailetl/pkg/metadata"
)

type options struct {
	Input  string `long:"input" short:"i" default:"transformed_cocktail_data.json" description:"Transformed batch JSON to report on"`
	Output string `long:"output" short:"o" default:"cocktail_report.md" description:"Report path"`
	RunID  string `long:"run-id" description:"Run ID recorded in the report metadata"`
	Verify string `long:"verify" description:"Verify the signature of an existing report instead of writing one"`
	Backup bool   `long:"backup" description:"Keep a .bak copy of an existing report"`
}

func main() {
	var opts options

	help, err := config.ParseOptions(&opts, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if help {
		return
	}

	if opts.Verify != "" {
		verify(opts.Verify)

		return
	}

	records, err := crawler.LoadTransformed(opts.Input)
	if err != nil {
		log.Fatalf("❌ Error loading %s: %v", opts.Input, err)
	}

	fmt.Printf("📂 Loaded %d drinks from %s\n", len(records), opts.Input)

	report, err := formatter.BuildReport(records, metadata.Metadata{
		Generated: time.Now(),
		RunID:     opts.RunID,
	})
	if err != nil {
		log.Fatalf("❌ Error building report: %v", err)
	}

	if err := crawler.NewClientWithDeps(nil, opts.Backup).SaveText(opts.Output, report); err != nil {
		log.Fatalf("❌ Error writing report: %v", err)
	}

	fmt.Printf("✅ Signed report written to %s\n", opts.Output)
}

func verify(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("❌ Error reading file: %v", err)
	}

	meta, err := metadata.Verify(string(content))
	if err != nil {
		log.Fatalf("❌ Verification failed: %v", err)
	}

	fmt.Printf("✅ Verified %s (run %s, %d drinks, generated %s)\n",
		path, meta.RunID, meta.Records, meta.Generated.Format(time.RFC3339))
}
