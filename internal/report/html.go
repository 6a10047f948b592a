package report

import (
	"fmt"
	"html"
	"strings"
)

// DefaultCSS is the stylesheet embedded in HTML reports.
const DefaultCSS = `html { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; } ` +
	`body { margin: 2em; } ` +
	`table { margin-top: 1em; clear: both; border: 1px solid grey; } ` +
	`dl, dt, dd { float: left; } dl, dt { clear: both; } ` +
	`dt { width: 8em; font-weight: 700; } dd { width: 32em; } ` +
	`tr.even { background-color: #F2F2FF; } tr.odd { background-color: white; } ` +
	`th, td { padding: 0.2em 0.5em; } ` +
	`th { text-align: left; color: #000066; border-bottom: 1px solid #000066; margin: 0; } ` +
	`h1, h2, h3 { clear: both; margin: 0; padding: 0; } ` +
	`h1 { color: #FE5300; } h2 { color: #004489; }`

// HTMLFormatter renders the report as a standalone HTML page. Repeated
// values in the id column are blanked so that multiple violations of the
// same record read as one visual group, and data rows alternate
// even/odd classes per record.
type HTMLFormatter struct {
	CSS      string
	IDColumn int
}

// Name implements Formatter.
func (f *HTMLFormatter) Name() string { return "html" }

// MIMEType implements Formatter.
func (f *HTMLFormatter) MIMEType() string { return MIMEHTML }

// Render implements Formatter.
func (f *HTMLFormatter) Render(r *Report) (string, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(r.Header.Title))
	b.WriteString("<head>\n")
	if f.CSS != "" {
		b.WriteString("<style>\n")
		b.WriteString(f.CSS)
		b.WriteString("\n</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(r.Header.Title))
	f.writeMeta(&b, r.Header, "rptmeta")
	for _, s := range r.Sections() {
		f.writeSection(&b, s, 2)
	}
	b.WriteString("</body>\n</html>")
	return b.String(), nil
}

// writeSection emits a section heading, its metadata, then either its
// child sections or its table body.
func (f *HTMLFormatter) writeSection(b *strings.Builder, s *Section, level int) {
	if level > 6 {
		level = 6
	}
	fmt.Fprintf(b, "<h%d>%s</h%d>\n", level, html.EscapeString(s.Header.Title), level)
	f.writeMeta(b, s.Header, "sectmeta")
	for _, child := range s.Sections() {
		f.writeSection(b, child, level+1)
	}
	if s.Body != nil {
		f.writeTable(b, s.Body)
	}
}

// writeMeta emits header metadata as a definition list.
func (f *HTMLFormatter) writeMeta(b *strings.Builder, h *Header, class string) {
	fmt.Fprintf(b, "<dl class=%q>\n", class)
	for _, p := range h.Pairs() {
		fmt.Fprintf(b, "<dt>%s</dt>\n", html.EscapeString(p.Key))
		fmt.Fprintf(b, "<dd>%s</dd>\n", html.EscapeString(CellString(p.Value)))
	}
	b.WriteString("</dl>\n")
}

// writeTable emits the body table, blanking repeated id cells and
// alternating row classes per distinct id.
func (f *HTMLFormatter) writeTable(b *strings.Builder, t *Table) {
	b.WriteString("<table>\n<tr>\n")
	for _, name := range t.ColumnNames() {
		fmt.Fprintf(b, "<th>%s</th>\n", html.EscapeString(name))
	}
	b.WriteString("</tr>\n")

	prevKey, group := "", 0
	for _, row := range t.Rows() {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = CellString(v)
		}
		if f.IDColumn < len(cells) {
			key := cells[f.IDColumn]
			if group > 0 && key == prevKey {
				cells[f.IDColumn] = ""
			} else {
				prevKey = key
				group++
			}
		}
		class := "odd"
		if group%2 == 0 {
			class = "even"
		}
		fmt.Fprintf(b, "<tr class=%q>\n", class)
		for _, c := range cells {
			fmt.Fprintf(b, "<td>%s</td>\n", html.EscapeString(c))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table>\n")
}
