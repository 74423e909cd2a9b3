package formatter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"cocktailetl/internal/models"
	"cocktailetl/internal/normalizer"
	"cocktailetl/pkg/metadata"
	"cocktailetl/pkg/utils"
)

// ReportTitle heads every batch report.
const ReportTitle = "# Cocktail Batch Report"

// instructionsWidth caps the instructions column, in display columns.
const instructionsWidth = 40

var reportHeader = []string{"#", "Name", "Category", "Alcoholic", "Glass", "Ingredients", "Total ml", "Instructions"}

// RenderReport builds an unsigned markdown report for a transformed batch.
func RenderReport(records []models.TransformedRecord) string {
	units := normalizer.NewUnitConverter()
	title := cases.Title(language.English)
	helper := utils.NewStringHelper()

	alcoholic := 0

	for _, rec := range records {
		if rec.Alcoholic {
			alcoholic++
		}
	}

	var sb strings.Builder

	sb.WriteString(ReportTitle + "\n\n")
	fmt.Fprintf(&sb, "Drinks: %d (alcoholic %d, non-alcoholic %d)\n\n", len(records), alcoholic, len(records)-alcoholic)

	writeRow(&sb, reportHeader)
	writeRow(&sb, slices.Repeat([]string{"---"}, len(reportHeader)))

	for i, rec := range records {
		ingredients := make([]string, len(rec.Ingredients))
		for j, ingredient := range rec.Ingredients {
			ingredients[j] = title.String(ingredient)
		}

		total := ""
		if ml, ok := totalMillilitres(units, rec); ok {
			total = strconv.FormatFloat(ml, 'f', 2, 64)
		}

		writeRow(&sb, []string{
			strconv.Itoa(i + 1),
			rec.Name,
			rec.Category,
			yesNo(rec.Alcoholic),
			rec.GlassType,
			strings.Join(ingredients, ", "),
			total,
			helper.TruncateString(helper.NormalizeWhitespace(rec.Instructions), instructionsWidth),
		})
	}

	return sb.String()
}

// BuildReport renders, aligns and signs a batch report.
func BuildReport(records []models.TransformedRecord, meta metadata.Metadata) (string, error) {
	formatted, err := FormatMarkdown(RenderReport(records))
	if err != nil {
		return "", fmt.Errorf("failed to format report: %w", err)
	}

	meta.Records = len(records)

	return metadata.Sign(formatted, meta), nil
}

// TotalMillilitres sums the measures already expressed in millilitres.
// The bool is false when no measure of the record is in millilitres.
func TotalMillilitres(rec models.TransformedRecord) (float64, bool) {
	return totalMillilitres(normalizer.NewUnitConverter(), rec)
}

func totalMillilitres(units *normalizer.UnitConverter, rec models.TransformedRecord) (float64, bool) {
	var (
		total float64
		found bool
	)

	for _, measure := range rec.Measures {
		if ml, ok := units.Millilitres(measure); ok {
			total += ml
			found = true
		}
	}

	return total, found
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")

	for _, cell := range cells {
		sb.WriteString(" " + sanitizeCell(cell) + " |")
	}

	sb.WriteString("\n")
}

// sanitizeCell keeps a value on one line and free of column delimiters.
func sanitizeCell(cell string) string {
	cell = norm.NFC.String(cell)
	cell = strings.ReplaceAll(cell, "|", "/")

	return strings.Join(strings.Fields(cell), " ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}
