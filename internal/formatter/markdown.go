// Package formatter renders batch reports as markdown.
package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"cocktailetl/pkg/metadata"
)

// FormatMarkdown aligns markdown tables by display width.
// A signed document stays signed: its metadata block is carried over and the hash refreshed.
func FormatMarkdown(content string) (string, error) {
	meta, cleanContent := metadata.Extract(content)

	var (
		formatted []string
		table     []string
	)

	for line := range strings.SplitSeq(cleanContent, "\n") {
		if isTableRow(line) {
			table = append(table, line)

			continue
		}

		formatted = append(formatted, processTable(table)...)
		table = nil

		formatted = append(formatted, line)
	}

	formatted = append(formatted, processTable(table)...)
	formattedContent := strings.Join(formatted, "\n")

	if meta == nil {
		return formattedContent, nil
	}

	return metadata.Sign(formattedContent, *meta), nil
}

// minColumnWidth is the width of the shortest valid separator, "---".
const minColumnWidth = 3

// isTableRow treats any line framed by pipes as a table row.
func isTableRow(line string) bool {
	trimmed := strings.TrimSpace(line)

	return len(trimmed) > 1 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

func processTable(rows []string) []string {
	// A table needs at least a header and a separator.
	if len(rows) < 2 {
		return rows
	}

	var table [][]string

	for _, row := range rows {
		parts := strings.Split(row, "|")

		if len(parts) > 0 && strings.TrimSpace(parts[0]) == "" {
			parts = parts[1:]
		}

		if len(parts) > 0 && strings.TrimSpace(parts[len(parts)-1]) == "" {
			parts = parts[:len(parts)-1]
		}

		var cells []string
		for _, p := range parts {
			cells = append(cells, strings.TrimSpace(p))
		}

		table = append(table, cells)
	}

	colCount := 0
	for _, row := range table {
		colCount = max(colCount, len(row))
	}

	separatorRowIdx := -1
	if isSeparatorRow(table[1]) {
		separatorRowIdx = 1
	}

	colWidths := make([]int, colCount)

	for rIdx, row := range table {
		if rIdx == separatorRowIdx {
			continue
		}

		for i := 0; i < len(row) && i < colCount; i++ {
			width := runewidth.StringWidth(row[i])
			if width > colWidths[i] {
				colWidths[i] = width
			}
		}
	}

	for i := range colWidths {
		colWidths[i] = max(colWidths[i], minColumnWidth)
	}

	var result []string

	for i, row := range table {
		var sb strings.Builder

		sb.WriteString("|")

		isSeparator := (i == separatorRowIdx)

		for j := 0; j < colCount; j++ {
			sb.WriteString(" ")

			content := ""
			if j < len(row) {
				content = row[j]
			}

			if isSeparator {
				// Alignment markers are not preserved.
				sb.WriteString(strings.Repeat("-", colWidths[j]))
			} else {
				sb.WriteString(runewidth.FillRight(content, colWidths[j]))
			}

			sb.WriteString(" |")
		}

		result = append(result, sb.String())
	}

	return result
}

// isSeparatorRow reports whether every cell consists of dashes and alignment colons.
func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}

	return true
}
