package normalizer

import (
	"errors"
	"fmt"

	"cocktailetl/internal/models"
)

// Validation errors.
var (
	ErrEmptyRecord  = errors.New("drink record is empty")
	ErrMissingField = errors.New("missing mandatory field")
)

// mandatoryFields must be present on every drink.
var mandatoryFields = []string{
	models.FieldID,
	models.FieldName,
	models.FieldCategory,
	models.FieldAlcoholic,
	models.FieldGlass,
	models.FieldInstructions,
}

// Validator checks a raw drink before it is transformed.
type Validator struct {
	required []string
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{required: mandatoryFields}
}

// Validate returns an error wrapping ErrMissingField for the first absent field.
func (v *Validator) Validate(raw models.RawRecord) error {
	if raw.IsZero() {
		return ErrEmptyRecord
	}

	for _, name := range v.required {
		if _, ok := raw.Field(name); !ok {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}

	// The alcoholic flag is compared as text, so null cannot be mapped.
	if raw.IsNull(models.FieldAlcoholic) {
		return fmt.Errorf("%w: %s is null", ErrMissingField, models.FieldAlcoholic)
	}

	return nil
}
