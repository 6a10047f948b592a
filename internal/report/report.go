// Package report provides the hierarchical report document assembled
// during a validation run, plus the formatters and delivery paths that
// turn it into operator-facing output.
//
// A Report is a header plus an ordered list of sections; each section
// carries either nested sub-sections or a tabular body. The tree is
// append-only while the validation pass runs and treated as immutable
// once handed to a formatter.
package report

import (
	"fmt"
	"sort"
	"strings"
)

// KV is one ordered header metadata pair.
type KV struct {
	Key   string
	Value any
}

// Header titles a report or section and carries ordered run metadata.
type Header struct {
	Title string
	kv    []KV
}

// NewHeader creates a header with the given title and no metadata.
func NewHeader(title string) *Header {
	return &Header{Title: title}
}

// Add appends a metadata pair, preserving insertion order.
func (h *Header) Add(key string, value any) {
	h.kv = append(h.kv, KV{Key: key, Value: value})
}

// Pairs returns the metadata pairs in insertion order.
func (h *Header) Pairs() []KV {
	return h.kv
}

// ToMap flattens the metadata pairs; later duplicates win.
func (h *Header) ToMap() map[string]any {
	m := make(map[string]any, len(h.kv))
	for _, p := range h.kv {
		m[p.Key] = p.Value
	}
	return m
}

// Len returns the number of metadata pairs.
func (h *Header) Len() int {
	return len(h.kv)
}

// Section is one node of the report tree: a header plus either child
// sections or a table body. This tool builds a strict two-level tree
// (collection -> violation group) but the model supports arbitrary
// nesting.
type Section struct {
	Header   *Header
	Body     *Table
	sections []*Section
}

// NewSection creates a section with a header and optional table body.
// Body is nil when the section is a container for sub-sections.
func NewSection(header *Header, body *Table) *Section {
	return &Section{Header: header, Body: body}
}

// AddSection appends a child section.
func (s *Section) AddSection(child *Section) {
	s.sections = append(s.sections, child)
}

// Sections returns the child sections in insertion order.
func (s *Section) Sections() []*Section {
	return s.sections
}

// Report is the top-level document: run metadata plus ordered sections.
type Report struct {
	Header   *Header
	sections []*Section
}

// New creates a blank report titled by the header.
func New(header *Header) *Report {
	return &Report{Header: header}
}

// AddSection appends a section to the report.
func (r *Report) AddSection(s *Section) {
	r.sections = append(r.sections, s)
}

// Sections returns the report sections in insertion order.
func (r *Report) Sections() []*Section {
	return r.sections
}

// IsEmpty reports whether no sections were ever added, e.g. every
// collection was skipped or every validation pass found nothing.
func (r *Report) IsEmpty() bool {
	return len(r.sections) == 0
}

// Table holds named columns and ordered rows of violation data.
// Maximum rendered cell widths are tracked on insert for fixed-width
// output formats.
type Table struct {
	cols   []string
	rows   [][]any
	widths []int
}

// NewTable creates an empty table with the given column names.
func NewTable(cols []string) *Table {
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}
	return &Table{cols: cols, widths: widths}
}

// Add appends one row. The number of values must match the column count.
func (t *Table) Add(values ...any) error {
	if len(values) != len(t.cols) {
		return fmt.Errorf("expected %d values, got %d", len(t.cols), len(values))
	}
	row := make([]any, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	for i, v := range row {
		if n := len(CellString(v)); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	return nil
}

// SortBy stably sorts rows by the named column; rows with equal keys keep
// their insertion order.
func (t *Table) SortBy(name string) error {
	col := -1
	for i, c := range t.cols {
		if c == name {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("column %q not in %v", name, t.cols)
	}
	sort.SliceStable(t.rows, func(i, j int) bool {
		return cellLess(t.rows[i][col], t.rows[j][col])
	})
	return nil
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	return t.cols
}

// ColumnWidths returns the maximum rendered width seen per column.
func (t *Table) ColumnWidths() []int {
	return t.widths
}

// Rows returns the rows in their current order.
func (t *Table) Rows() [][]any {
	return t.rows
}

// Values returns each row as a column-name keyed map.
func (t *Table) Values() []map[string]any {
	out := make([]map[string]any, len(t.rows))
	for i, row := range t.rows {
		m := make(map[string]any, len(t.cols))
		for j, c := range t.cols {
			m[c] = row[j]
		}
		out[i] = m
	}
	return out
}

// NRows returns the row count.
func (t *Table) NRows() int {
	return len(t.rows)
}

// NCols returns the column count.
func (t *Table) NCols() int {
	return len(t.cols)
}

// CellString renders a cell for text output.
func CellString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

// cellLess orders cells numerically when both sides are numbers and
// lexically otherwise.
func cellLess(a, b any) bool {
	na, oka := cellNumber(a)
	nb, okb := cellNumber(b)
	if oka && okb {
		return na < nb
	}
	return strings.Compare(CellString(a), CellString(b)) < 0
}

// cellNumber converts numeric cell types to float64.
func cellNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
