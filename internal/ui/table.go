package ui

import (
	"strings"

	reansi "github.com/muesli/reflow/ansi"
)

// defaultPadding is the minimum run of spaces separating adjacent columns.
const defaultPadding = 1

// VisualWidth returns the printable width of s. ANSI style sequences
// contribute nothing to the width.
func VisualWidth(s string) int {
	return reansi.PrintableRuneWidth(s)
}

// StripStyle returns s with every ANSI escape sequence removed.
func StripStyle(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inEscape := false
	for _, r := range s {
		if inEscape {
			if reansi.IsTerminator(r) {
				inEscape = false
			}
			continue
		}
		if r == reansi.Marker {
			inEscape = true
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// PaddedTable renders rows as a left-aligned table without borders. Each
// column is padded to the printable width of its widest cell plus padding
// spaces; the last cell of every row carries no trailing padding. Styled
// cells align the same as plain ones because widths ignore escape
// sequences. Rows are joined with single newlines and the result has no
// trailing newline; an empty table renders as an empty string.
func PaddedTable(rows [][]string, padding int) string {
	if len(rows) == 0 {
		return ""
	}
	if padding < 1 {
		padding = defaultPadding
	}

	widths := columnWidths(rows)

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			b.WriteString(cell)
			if j == len(row)-1 {
				continue
			}
			pad := widths[j] + padding - VisualWidth(cell)
			if pad < padding {
				pad = padding
			}
			b.WriteString(strings.Repeat(" ", pad))
		}
	}

	return b.String()
}

// columnWidths computes the maximum printable width per column. Rows may be
// ragged; a column's width considers only the rows that reach it.
func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for j, cell := range row {
			w := VisualWidth(cell)
			if j == len(widths) {
				widths = append(widths, w)
			} else if w > widths[j] {
				widths[j] = w
			}
		}
	}
	return widths
}
