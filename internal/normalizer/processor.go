// Package normalizer turns raw TheCocktailDB drinks into standardised records:
// text normalisation, unit conversion and ingredient/measure reconciliation.
package normalizer

import (
	"fmt"

	"cocktailetl/internal/models"
)

// Processor runs validation, transformation and reconciliation for one drink.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// NewProcessor creates a new processor instance.
func NewProcessor() *Processor {
	return &Processor{
		validator:   NewValidator(),
		transformer: NewTransformer(),
	}
}

// Process returns the final record for a raw drink.
func (p *Processor) Process(raw models.RawRecord) (*models.TransformedRecord, error) {
	// 1. Validate the input data
	if err := p.validator.Validate(raw); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 2. Transform the data
	record, err := p.transformer.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("transformation failed: %w", err)
	}

	// 3. Drop incomplete ingredient/measure pairs
	record.Ingredients, record.Measures = Reconcile(record.Ingredients, record.Measures)

	return record, nil
}
