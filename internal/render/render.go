// Package render draws query results as ASCII tables. It is a pure
// formatting layer: it consumes headers and rows and returns text,
// touching no engine state.
package render

import (
	"fmt"
	"strings"

	"rowdb/internal/storage"
)

// minColumnWidth keeps narrow columns readable.
const minColumnWidth = 3

// Table renders headers and rows as a boxed table:
//
//	| id  | name  |
//	| --- | ----- |
//	| 1   | Alice |
//
// Column widths fit the widest trimmed cell, with one space of padding
// on each side.
func Table(headers []string, rows []storage.Row) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if n := len(strings.TrimSpace(cell)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}

	var sb strings.Builder

	writeRow := func(cells []string) {
		sb.WriteByte('|')
		for i, w := range widths {
			var cell string
			if i < len(cells) {
				cell = strings.TrimSpace(cells[i])
			}
			fmt.Fprintf(&sb, " %-*s |", w, cell)
		}
		sb.WriteByte('\n')
	}

	writeRow(headers)

	sb.WriteByte('|')
	for _, w := range widths {
		sb.WriteString(" " + strings.Repeat("-", w) + " |")
	}
	sb.WriteByte('\n')

	for _, row := range rows {
		writeRow(row)
	}

	return strings.TrimRight(sb.String(), "\n")
}
