package report

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders the report as Markdown with fixed-width
// violation tables, sized from the column widths tracked on insert.
type MarkdownFormatter struct{}

// Name implements Formatter.
func (f *MarkdownFormatter) Name() string { return "markdown" }

// MIMEType implements Formatter.
func (f *MarkdownFormatter) MIMEType() string { return MIMEText }

// Render implements Formatter.
func (f *MarkdownFormatter) Render(r *Report) (string, error) {
	var lines []string
	lines = append(lines, fmt.Sprintf("# %s #", r.Header.Title), "")
	if r.Header.Len() > 0 {
		lines = append(lines, "Info: "+metaLine(r.Header))
	}
	for _, s := range r.Sections() {
		lines = f.writeSection(lines, s, 2)
	}
	return strings.Join(lines, "\n"), nil
}

// writeSection emits one section and recurses into its children.
func (f *MarkdownFormatter) writeSection(lines []string, s *Section, level int) []string {
	if level > 6 {
		level = 6
	}
	marks := strings.Repeat("#", level)
	lines = append(lines, "", fmt.Sprintf("%s %s %s", marks, s.Header.Title, marks), "")
	if s.Header.Len() > 0 {
		lines = append(lines, "Info: "+metaLine(s.Header))
	}
	for _, child := range s.Sections() {
		lines = f.writeSection(lines, child, level+1)
	}
	if s.Body != nil {
		lines = append(lines, "", "Violations:", "")
		const indent = "    "
		widths := s.Body.ColumnWidths()
		header := make([]any, len(s.Body.ColumnNames()))
		for i, name := range s.Body.ColumnNames() {
			header[i] = name
		}
		lines = append(lines, indent+fixedWidth(header, widths))
		for _, row := range s.Body.Rows() {
			lines = append(lines, indent+fixedWidth(row, widths))
		}
	}
	return lines
}

// metaLine renders header metadata as "k=v, k=v".
func metaLine(h *Header) string {
	parts := make([]string, 0, h.Len())
	for _, p := range h.Pairs() {
		parts = append(parts, fmt.Sprintf("%s=%s", p.Key, CellString(p.Value)))
	}
	return strings.Join(parts, ", ")
}

// fixedWidth pads each value to its column width plus one space.
func fixedWidth(values []any, widths []int) string {
	var b strings.Builder
	for i, v := range values {
		w := 0
		if i < len(widths) {
			w = widths[i]
		}
		fmt.Fprintf(&b, "%-*s ", w, CellString(v))
	}
	return strings.TrimRight(b.String(), " ")
}
