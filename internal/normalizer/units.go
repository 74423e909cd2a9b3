package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

// millilitreSuffix is appended to every converted measure.
const millilitreSuffix = " ml"

// defaultConversions maps lower-case unit tokens to millilitres per unit.
var defaultConversions = map[string]float64{
	"oz":   29.57,
	"ml":   1.0,
	"cl":   10.0,
	"tsp":  4.93,
	"tbsp": 14.79,
}

// UnitConverter rewrites free-text measures such as "1.5 oz" into millilitres.
type UnitConverter struct {
	measurePattern   *regexp.Regexp
	canonicalPattern *regexp.Regexp
	conversions      map[string]float64
}

// NewUnitConverter creates a converter with the standard bar conversion table.
func NewUnitConverter() *UnitConverter {
	return &UnitConverter{
		// Leading quantity, optional whitespace of any kind, then the unit token. Fractions never match.
		measurePattern:   regexp.MustCompile(`^(\d+(\.\d+)?)[\s\v\x{85}\p{Z}]*(\w+)`),
		canonicalPattern: regexp.MustCompile(`^(\d+\.\d{2}) ml$`),
		conversions:      defaultConversions,
	}
}

// Convert returns "<quantity*factor> ml" with two decimals, or the measure
// unchanged when it has no leading quantity or an unknown unit.
func (c *UnitConverter) Convert(measure string) string {
	if measure == "" {
		return measure
	}

	match := c.measurePattern.FindStringSubmatch(measure)
	if match == nil {
		return measure
	}

	factor, ok := c.conversions[strings.ToLower(match[3])]
	if !ok {
		return measure
	}

	quantity, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return measure
	}

	return strconv.FormatFloat(quantity*factor, 'f', 2, 64) + millilitreSuffix
}

// ConvertAll converts every measure, preserving order and length.
func (c *UnitConverter) ConvertAll(measures []string) []string {
	converted := make([]string, len(measures))
	for i, measure := range measures {
		converted[i] = c.Convert(measure)
	}

	return converted
}

// Millilitres parses a measure previously produced by Convert.
func (c *UnitConverter) Millilitres(measure string) (float64, bool) {
	match := c.canonicalPattern.FindStringSubmatch(measure)
	if match == nil {
		return 0, false
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, false
	}

	return value, true
}

// StandardiseUnits converts a list of measures with the default converter.
func StandardiseUnits(measures []string) []string {
	return NewUnitConverter().ConvertAll(measures)
}
