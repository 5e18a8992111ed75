package report

import (
	"fmt"
	"strings"
)

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ", "\r", "")

// Markdown renders r the way the image renderer expects it: a heading per
// section, pipe tables, and status lines wrapped in colour tags.
func Markdown(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", r.Title)

	for _, s := range r.Sections {
		switch {
		case s.Table != nil:
			if s.Title != "" {
				fmt.Fprintf(&b, "### %s\n\n", s.Title)
			}
			writeTable(&b, s.Table)
		case s.Text != nil && s.Text.Status:
			fmt.Fprintf(&b, "## %s: <font color=\"%s\">%s</font>\n\n",
				s.Title, s.Text.Severity.Color(), strings.Join(s.Text.Lines, " "))
		case s.Text != nil:
			if s.Title != "" {
				fmt.Fprintf(&b, "### %s\n\n", s.Title)
			}
			for _, line := range s.Text.Lines {
				b.WriteString(line)
				b.WriteString("\n\n")
			}
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeTable(b *strings.Builder, t *Table) {
	b.WriteString("|")
	for _, c := range t.Columns {
		fmt.Fprintf(b, " %s |", cellEscaper.Replace(c))
	}
	b.WriteString("\n|")
	for i := range t.Columns {
		if i == 0 {
			b.WriteString(" --- |")
		} else {
			b.WriteString(" :---: |")
		}
	}
	b.WriteString("\n")

	for _, row := range t.Rows {
		b.WriteString("|")
		for _, cell := range row {
			fmt.Fprintf(b, " %s |", cellEscaper.Replace(cell))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}
