// Package main provides the normalizer command for re-running the transformation over a saved raw document.
package main

import (
	"fmt"
	"log"
	"os"

	"cocktailetl/internal/config"
	"cocktailetl/internal/crawler"
	"cocktailetl/internal/models"
	"cocktailetl/internal/normalizer"
)

type options struct {
	Input  string `long:"input" short:"i" default:"raw_cocktail_data.json" description:"Path to a raw batch document"`
	Output string `long:"output" short:"o" default:"transformed_cocktail_data.json" description:"Path to the transformed batch document"`
	Backup bool   `long:"backup" description:"Keep a .bak copy of an existing output file"`
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

	raws, err := crawler.LoadRaw(opts.Input)
	if err != nil {
		log.Fatalf("Error reading file: %v\n", err)
	}

	fmt.Printf("📂 Reading: %s (%d drinks)\n", opts.Input, len(raws))

	processor := normalizer.NewProcessor()
	records := make([]models.TransformedRecord, 0, len(raws))

	for _, raw := range raws {
		record, procErr := processor.Process(raw)
		if procErr != nil {
			fmt.Printf("Error processing cocktail: %v\n", procErr)

			continue
		}

		records = append(records, *record)
	}

	if err := crawler.NewClientWithDeps(nil, opts.Backup).SaveJSON(opts.Output, records); err != nil {
		log.Fatalf("Error writing file: %v\n", err)
	}

	fmt.Printf("✅ Saved %d/%d drinks to: %s\n", len(records), len(raws), opts.Output)
}
