// Package batch runs one fetch, transform and save cycle over a fixed number of random drinks.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"cocktailetl/internal/formatter"
	"cocktailetl/internal/logger"
	"cocktailetl/internal/models"
	"cocktailetl/internal/normalizer"
	"cocktailetl/pkg/metadata"
)

// CompletionMessage is printed once the loop has finished and both documents are written.
const CompletionMessage = "Batch processing complete. Data saved to files."

// ErrNegativeBatchSize is returned when Run is asked for fewer than zero drinks.
var ErrNegativeBatchSize = errors.New("batch size must not be negative")

// Fetcher returns one raw drink per call.
type Fetcher interface {
	FetchRandom(ctx context.Context) (models.RawRecord, error)
}

// Processor turns a raw drink into its final record.
type Processor interface {
	Process(raw models.RawRecord) (*models.TransformedRecord, error)
}

// Writer persists batch documents.
type Writer interface {
	SaveJSON(path string, v any) error
	SaveText(path, content string) error
}

// Options selects where a run writes its output. An empty ReportPath skips the report.
type Options struct {
	RawPath         string
	TransformedPath string
	ReportPath      string
}

// Outcome is the result of one iteration. Exactly one of Record and Err is set.
// Raw is set whenever the fetch succeeded, even if processing failed.
type Outcome struct {
	Raw    models.RawRecord
	Record *models.TransformedRecord
	Err    error
	Index  int
}

// OK reports whether the iteration produced a record.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// Fetched reports whether a drink was received for this iteration.
func (o Outcome) Fetched() bool {
	return !o.Raw.IsZero()
}

// Result summarises a finished run.
type Result struct {
	RunID       string
	Outcomes    []Outcome
	Raw         []models.RawRecord
	Transformed []models.TransformedRecord
	Attempted   int
	Succeeded   int
	Failed      int
	Interrupted bool
	Duration    time.Duration
}

// Runner drives the sequential batch loop.
type Runner struct {
	fetcher   Fetcher
	processor Processor
	writer    Writer
	logger    *logger.Logger
	out       io.Writer
	opts      Options
}

// NewRunner creates a runner with the standard normalizer pipeline.
func NewRunner(fetcher Fetcher, writer Writer, opts Options, log *logger.Logger) *Runner {
	return NewRunnerWithProcessor(fetcher, normalizer.NewProcessor(), writer, opts, log)
}

// NewRunnerWithProcessor creates a runner with a custom processor (useful for testing).
func NewRunnerWithProcessor(fetcher Fetcher, processor Processor, writer Writer, opts Options, log *logger.Logger) *Runner {
	return &Runner{
		fetcher:   fetcher,
		processor: processor,
		writer:    writer,
		logger:    log,
		out:       os.Stdout,
		opts:      opts,
	}
}

// SetOutput redirects the user-facing progress lines.
func (r *Runner) SetOutput(w io.Writer) {
	r.out = w
}

// Run fetches and transforms size drinks one after another, then writes both documents.
// Per-drink failures are reported and skipped. A drink that was fetched but failed
// processing still goes into the raw document. Only write failures are returned as errors.
// A cancelled context stops the loop early; whatever was collected is still written.
func (r *Runner) Run(ctx context.Context, size int) (*Result, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeBatchSize, size)
	}

	startTime := time.Now()

	result := &Result{
		RunID:       uuid.NewString(),
		Outcomes:    make([]Outcome, 0, size),
		Raw:         []models.RawRecord{},
		Transformed: []models.TransformedRecord{},
	}

	log := r.logger.With("run_id", result.RunID)
	log.Info("Starting batch", "size", size)

	for i := range size {
		if ctx.Err() != nil {
			result.Interrupted = true

			log.Warn("Batch interrupted", "completed", i, "reason", ctx.Err())

			break
		}

		outcome := r.runOne(ctx, i)
		result.Outcomes = append(result.Outcomes, outcome)
		result.Attempted++

		if outcome.Fetched() {
			result.Raw = append(result.Raw, outcome.Raw)
		}

		if !outcome.OK() {
			result.Failed++

			fmt.Fprintf(r.out, "Error processing cocktail: %v\n", outcome.Err)
			log.Debug("Drink skipped", "index", i, "error", outcome.Err)

			continue
		}

		result.Succeeded++
		result.Transformed = append(result.Transformed, *outcome.Record)

		log.Debug("Drink processed", "index", i, "id", outcome.Record.CocktailID, "name", outcome.Record.Name)
	}

	if err := r.save(result); err != nil {
		return result, err
	}

	result.Duration = time.Since(startTime)

	log.Info("Batch finished",
		"succeeded", result.Succeeded,
		"failed", result.Failed,
		"duration", result.Duration)
	fmt.Fprintln(r.out, CompletionMessage)

	return result, nil
}

func (r *Runner) runOne(ctx context.Context, index int) Outcome {
	raw, err := r.fetcher.FetchRandom(ctx)
	if err != nil {
		return Outcome{Index: index, Err: err}
	}

	record, err := r.processor.Process(raw)
	if err != nil {
		return Outcome{Index: index, Raw: raw, Err: err}
	}

	return Outcome{Index: index, Raw: raw, Record: record}
}

func (r *Runner) save(result *Result) error {
	if err := r.writer.SaveJSON(r.opts.RawPath, result.Raw); err != nil {
		return fmt.Errorf("failed to save raw data: %w", err)
	}

	if err := r.writer.SaveJSON(r.opts.TransformedPath, result.Transformed); err != nil {
		return fmt.Errorf("failed to save transformed data: %w", err)
	}

	if r.opts.ReportPath == "" {
		return nil
	}

	report, err := formatter.BuildReport(result.Transformed, metadata.Metadata{
		Generated: time.Now(),
		RunID:     result.RunID,
	})
	if err != nil {
		return err
	}

	if err := r.writer.SaveText(r.opts.ReportPath, report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}
