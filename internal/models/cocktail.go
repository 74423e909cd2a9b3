// Package models defines the cocktail records that flow through the batch pipeline.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field names of a drink object returned by TheCocktailDB.
const (
	FieldID           = "idDrink"
	FieldName         = "strDrink"
	FieldCategory     = "strCategory"
	FieldAlcoholic    = "strAlcoholic"
	FieldGlass        = "strGlass"
	FieldInstructions = "strInstructions"

	// MaxIngredients is the number of numbered ingredient/measure slots on a drink.
	MaxIngredients = 15
)

// IngredientField returns the name of the i-th ingredient field (1-based).
func IngredientField(i int) string {
	return fmt.Sprintf("strIngredient%d", i)
}

// MeasureField returns the name of the i-th measure field (1-based).
func MeasureField(i int) string {
	return fmt.Sprintf("strMeasure%d", i)
}

// RawRecord is a drink object exactly as the API returned it.
// The received bytes are kept so the raw output document preserves field order.
type RawRecord struct {
	fields map[string]any
	body   json.RawMessage
}

// NewRawRecord decodes a single drink object.
func NewRawRecord(data []byte) (RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return RawRecord{}, fmt.Errorf("failed to decode drink: %w", err)
	}

	if fields == nil {
		return RawRecord{}, nil
	}

	body := make(json.RawMessage, len(data))
	copy(body, data)

	return RawRecord{fields: fields, body: body}, nil
}

// MustRawRecord is like NewRawRecord but panics on malformed input. Intended for fixtures.
func MustRawRecord(data string) RawRecord {
	rec, err := NewRawRecord([]byte(data))
	if err != nil {
		panic(err)
	}

	return rec
}

// IsZero reports whether the record holds no drink (e.g. a JSON null).
func (r RawRecord) IsZero() bool {
	return r.fields == nil
}

// Field returns the string value of a field and whether the key is present.
// A JSON null is present and reads as "".
func (r RawRecord) Field(name string) (string, bool) {
	v, ok := r.fields[name]
	if !ok {
		return "", false
	}

	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	default:
		return fmt.Sprint(val), true
	}
}

// IsNull reports whether the field is present with a JSON null value.
func (r RawRecord) IsNull(name string) bool {
	v, ok := r.fields[name]

	return ok && v == nil
}

// MarshalJSON writes the record back out as received.
func (r RawRecord) MarshalJSON() ([]byte, error) {
	if len(r.body) == 0 {
		return []byte("null"), nil
	}

	return r.body, nil
}

// UnmarshalJSON decodes a drink object. A JSON null leaves the record zero.
func (r *RawRecord) UnmarshalJSON(data []byte) error {
	rec, err := NewRawRecord(data)
	if err != nil {
		return err
	}

	*r = rec

	return nil
}

// TransformedRecord is the normalised shape written to the transformed document.
// Field order is the document's key order.
type TransformedRecord struct {
	CocktailID   string   `json:"CocktailID"`
	Name         string   `json:"Name"`
	Category     string   `json:"Category"`
	Alcoholic    bool     `json:"Alcoholic"`
	GlassType    string   `json:"GlassType"`
	Ingredients  []string `json:"Ingredients"`
	Measures     []string `json:"Measures"`
	Instructions string   `json:"Instructions"`
}

// MarshalJSON writes empty ingredient and measure lists as [].
func (t TransformedRecord) MarshalJSON() ([]byte, error) {
	type plainRecord TransformedRecord

	if t.Ingredients == nil {
		t.Ingredients = []string{}
	}

	if t.Measures == nil {
		t.Measures = []string{}
	}

	return json.Marshal(plainRecord(t))
}
