package report

import (
	"fmt"
	"strings"
)

// PlainText renders r for chat clients that show text verbatim: one line per
// table row as "Column: value" pairs, and status lines with their severity.
func PlainText(r *Report) string {
	var b strings.Builder

	b.WriteString(r.Title)
	b.WriteString("\n")

	for _, s := range r.Sections {
		b.WriteString("\n")
		switch {
		case s.Table != nil:
			if s.Title != "" {
				b.WriteString(s.Title)
				b.WriteString("\n")
			}
			if len(s.Table.Rows) == 0 {
				b.WriteString("none\n")
			}
			for _, row := range s.Table.Rows {
				b.WriteString(plainRow(s.Table.Columns, row))
				b.WriteString("\n")
			}
		case s.Text != nil && s.Text.Status:
			fmt.Fprintf(&b, "%s: %s (%s)\n", s.Title, strings.Join(s.Text.Lines, " "), s.Text.Severity)
		case s.Text != nil:
			if s.Title != "" {
				b.WriteString(s.Title)
				b.WriteString("\n")
			}
			for _, line := range s.Text.Lines {
				b.WriteString(line)
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func plainRow(columns, row []string) string {
	pairs := make([]string, 0, len(row))
	for i, cell := range row {
		if i < len(columns) {
			pairs = append(pairs, columns[i]+": "+cell)
		} else {
			pairs = append(pairs, cell)
		}
	}
	return strings.Join(pairs, ", ")
}
