package normalizer

import (
	"fmt"
	"strings"

	"cocktailetl/internal/models"
)

// alcoholicFlag is the strAlcoholic value that maps to true.
const alcoholicFlag = "alcoholic"

// Transformer maps a raw drink into the standardised record shape.
type Transformer struct {
	units *UnitConverter
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{units: NewUnitConverter()}
}

// Transform builds a TransformedRecord before reconciliation.
// Ingredients and measures are compacted independently, so their positions
// may no longer line up with the numbered slots.
func (t *Transformer) Transform(raw models.RawRecord) (*models.TransformedRecord, error) {
	fields := make(map[string]string, len(mandatoryFields))

	for _, name := range mandatoryFields {
		value, ok := raw.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingField, name)
		}

		fields[name] = value
	}

	if raw.IsNull(models.FieldAlcoholic) {
		return nil, fmt.Errorf("%w: %s is null", ErrMissingField, models.FieldAlcoholic)
	}

	measures := compact(raw, models.MeasureField)

	return &models.TransformedRecord{
		CocktailID:   fields[models.FieldID],
		Name:         NormaliseString(fields[models.FieldName]),
		Category:     fields[models.FieldCategory],
		Alcoholic:    strings.ToLower(fields[models.FieldAlcoholic]) == alcoholicFlag,
		GlassType:    fields[models.FieldGlass],
		Ingredients:  compact(raw, models.IngredientField),
		Measures:     t.units.ConvertAll(measures),
		Instructions: NormaliseString(fields[models.FieldInstructions]),
	}, nil
}

// compact collects numbered fields 1..MaxIngredients in order, skipping absent, null and empty slots.
func compact(raw models.RawRecord, fieldName func(int) string) []string {
	values := make([]string, 0, models.MaxIngredients)

	for i := 1; i <= models.MaxIngredients; i++ {
		if value, _ := raw.Field(fieldName(i)); value != "" {
			values = append(values, value)
		}
	}

	return values
}
